//go:build !integration

package web

import "testing"

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0 B"},
		{512, "512 B"},
		{1024, "1.0 KB"},
		{1536, "1.5 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
		{int64(2.5 * 1024 * 1024 * 1024), "2.5 GB"},
	}
	for _, c := range cases {
		if got := FormatBytes(c.in); got != c.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFormatEpoch(t *testing.T) {
	if got := FormatEpoch(0); got != "" {
		t.Errorf("FormatEpoch(0) = %q, want empty", got)
	}
	// 2001-09-09T01:46:40Z
	if got := FormatEpoch(1000000000); got != "2001-09-09" {
		t.Errorf("FormatEpoch(1000000000) = %q", got)
	}
}
