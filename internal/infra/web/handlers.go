package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"hotspot-admin/internal/domain"
	"hotspot-admin/internal/domain/model"
	"hotspot-admin/internal/usecase"

	"github.com/go-chi/chi/v5"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Error string `json:"error"`
	}{Error: msg})
}

// writeDomainError maps domain sentinels onto HTTP statuses. Messages stay
// generic so the public endpoints leak nothing about card or account state
// beyond what the caller is entitled to know.
func writeDomainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid request")
	case errors.Is(err, domain.ErrCardNotFound), errors.Is(err, domain.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	case errors.Is(err, domain.ErrCardAlreadyUsed):
		writeError(w, http.StatusConflict, "card already used")
	case errors.Is(err, domain.ErrAlreadyExists):
		writeError(w, http.StatusConflict, "already exists")
	case errors.Is(err, domain.ErrInconsistentState):
		writeError(w, http.StatusConflict, "card is not redeemable")
	case errors.Is(err, domain.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "unauthorized")
	default:
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// ===== Public activation =====

type verifyRequest struct {
	Code string `json:"code"`
}

type verifyResponse struct {
	Code         string  `json:"code"`
	PackageName  string  `json:"package_name"`
	DurationDays int     `json:"duration_days"`
	Price        float64 `json:"price"`
	SpeedLimit   string  `json:"speed_limit,omitempty"`
}

func verifyHandler(cardUC *usecase.CardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req verifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := cardUC.Verify(r.Context(), req.Code)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, verifyResponse{
			Code:         res.Card.Code,
			PackageName:  res.Package.Name,
			DurationDays: res.Package.DurationDays,
			Price:        res.Package.Price,
			SpeedLimit:   res.Package.SpeedLimit,
		})
	}
}

type activateRequest struct {
	Code     string `json:"code"`
	Username string `json:"username"`
}

type activateResponse struct {
	Username   string `json:"username"`
	Password   string `json:"password,omitempty"`
	NewAccount bool   `json:"new_account"`
	ExpiresAt  int64  `json:"expires_at"`
	ExpiresOn  string `json:"expires_on"`
}

func activateHandler(cardUC *usecase.CardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req activateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := cardUC.Redeem(r.Context(), req.Code, req.Username)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, activateResponse{
			Username:   res.Username,
			Password:   res.Password,
			NewAccount: res.NewAccount,
			ExpiresAt:  res.ExpiresAt,
			ExpiresOn:  FormatEpoch(res.ExpiresAt),
		})
	}
}

// ===== Auth =====

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func loginHandler(authUC *usecase.AuthUseCase, am *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		admin, err := authUC.SignIn(r.Context(), req.Username, req.Password)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		if _, err := am.Mint(w, admin.ID, admin.Username); err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Username string `json:"username"`
		}{Username: admin.Username})
	}
}

func meHandler(am *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, err := am.ParseFromRequest(r)
		if err != nil {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			AdminID  string `json:"admin_id"`
			Username string `json:"username"`
		}{AdminID: claims.Subject, Username: claims.Username})
	}
}

func logoutHandler(am *AuthManager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		am.Clear(w)
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Stats =====

func statsHandler(statsUC usecase.StatsUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		totals, err := statsUC.Totals(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get totals")
			return
		}

		week, month, year, err := statsUC.Revenue(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to get revenue")
			return
		}

		response := struct {
			Subscribers       int `json:"subscribers"`
			ActiveSubscribers int `json:"active_subscribers"`
			CardsTotal        int `json:"cards_total"`
			CardsUsed         int `json:"cards_used"`
			CardsUnused       int `json:"cards_unused"`
			ActivePackages    int `json:"active_packages"`
			Revenue           struct {
				Week  float64 `json:"week"`
				Month float64 `json:"month"`
				Year  float64 `json:"year"`
			} `json:"revenue"`
		}{
			Subscribers:       totals.Subscribers,
			ActiveSubscribers: totals.ActiveSubscribers,
			CardsTotal:        totals.CardsTotal,
			CardsUsed:         totals.CardsUsed,
			CardsUnused:       totals.CardsUnused,
			ActivePackages:    totals.ActivePackages,
		}
		response.Revenue.Week = week
		response.Revenue.Month = month
		response.Revenue.Year = year

		writeJSON(w, http.StatusOK, response)
	}
}

// ===== Packages =====

type packageRequest struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	DurationDays  int     `json:"duration_days"`
	SpeedLimit    string  `json:"speed_limit"`
	DownloadLimit string  `json:"download_limit"`
}

type packageResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	DurationDays  int     `json:"duration_days"`
	SpeedLimit    string  `json:"speed_limit"`
	DownloadLimit string  `json:"download_limit"`
	IsActive      bool    `json:"is_active"`
	Subscribers   int     `json:"subscribers"`
}

func toPackageResponse(p *model.Package, subscribers int) packageResponse {
	return packageResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		DurationDays:  p.DurationDays,
		SpeedLimit:    p.SpeedLimit,
		DownloadLimit: p.DownloadLimit,
		IsActive:      p.IsActive,
		Subscribers:   subscribers,
	}
}

func packagesListHandler(pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		pkgs, err := pkgUC.List(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list packages")
			return
		}
		counts, err := pkgUC.SubscriberCounts(ctx)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to count subscribers")
			return
		}

		data := make([]packageResponse, 0, len(pkgs))
		for _, p := range pkgs {
			data = append(data, toPackageResponse(p, counts[p.ID]))
		}
		writeJSON(w, http.StatusOK, struct {
			Data []packageResponse `json:"data"`
		}{Data: data})
	}
}

func packagesCreateHandler(pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req packageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		pkg, err := pkgUC.Create(r.Context(), req.Name, req.Price, req.DurationDays, req.SpeedLimit, req.DownloadLimit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toPackageResponse(pkg, 0))
	}
}

func packagesUpdateHandler(pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")

		var req packageRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		pkg, err := pkgUC.Update(r.Context(), id, req.Name, req.Price, req.DurationDays, req.SpeedLimit, req.DownloadLimit)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toPackageResponse(pkg, 0))
	}
}

func packagesDeleteHandler(pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := pkgUC.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ===== Subscribers =====

type subscriberResponse struct {
	ID            string `json:"id"`
	Username      string `json:"username"`
	Password      string `json:"password"`
	FullName      string `json:"full_name,omitempty"`
	Phone         string `json:"phone,omitempty"`
	PackageID     string `json:"package_id"`
	Active        bool   `json:"active"`
	StartedAt     int64  `json:"started_at"`
	ExpiresAt     int64  `json:"expires_at"`
	ExpiresOn     string `json:"expires_on"`
	TotalDownload string `json:"total_download"`
	TotalUpload   string `json:"total_upload"`
}

func toSubscriberResponse(s *model.Subscriber, now int64) subscriberResponse {
	return subscriberResponse{
		ID:            s.ID,
		Username:      s.Username,
		Password:      s.Password,
		FullName:      s.FullName,
		Phone:         s.Phone,
		PackageID:     s.PackageID,
		Active:        s.IsActive(now),
		StartedAt:     s.StartedAt,
		ExpiresAt:     s.ExpiresAt,
		ExpiresOn:     FormatEpoch(s.ExpiresAt),
		TotalDownload: FormatBytes(s.TotalDownload),
		TotalUpload:   FormatBytes(s.TotalUpload),
	}
}

func subscribersListHandler(subUC *usecase.SubscriberUseCase, now func() int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)

		subs, total, err := subUC.List(r.Context(), offset, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list subscribers")
			return
		}

		at := now()
		data := make([]subscriberResponse, 0, len(subs))
		for _, s := range subs {
			data = append(data, toSubscriberResponse(s, at))
		}
		writeJSON(w, http.StatusOK, struct {
			Data   []subscriberResponse `json:"data"`
			Total  int                  `json:"total"`
			Limit  int                  `json:"limit"`
			Offset int                  `json:"offset"`
		}{Data: data, Total: total, Limit: limit, Offset: offset})
	}
}

type subscriberCreateRequest struct {
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	Phone     string `json:"phone"`
	PackageID string `json:"package_id"`
}

func subscribersCreateHandler(subUC *usecase.SubscriberUseCase, now func() int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req subscriberCreateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		sub, err := subUC.Create(r.Context(), req.FullName, req.Username, req.Password, req.Phone, req.PackageID)
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toSubscriberResponse(sub, now()))
	}
}

func subscribersGetHandler(subUC *usecase.SubscriberUseCase, now func() int64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sub, err := subUC.Get(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeDomainError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toSubscriberResponse(sub, now()))
	}
}

func subscribersDeleteHandler(subUC *usecase.SubscriberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := subUC.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
			writeDomainError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func subscribersSuggestHandler(subUC *usecase.SubscriberUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, password, err := subUC.SuggestCredentials()
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}{Username: username, Password: password})
	}
}

// ===== Cards =====

type cardResponse struct {
	ID          string  `json:"id"`
	Code        string  `json:"code"`
	PackageID   string  `json:"package_id"`
	PackageName string  `json:"package_name,omitempty"`
	Status      string  `json:"status"`
	UsedBy      *string `json:"used_by,omitempty"`
	UsedAt      *int64  `json:"used_at,omitempty"`
	BatchID     string  `json:"batch_id"`
}

func toCardResponses(cards []*model.Card, names map[string]string) []cardResponse {
	out := make([]cardResponse, 0, len(cards))
	for _, c := range cards {
		out = append(out, cardResponse{
			ID:          c.ID,
			Code:        c.Code,
			PackageID:   c.PackageID,
			PackageName: names[c.PackageID],
			Status:      string(c.Status),
			UsedBy:      c.UsedBy,
			UsedAt:      c.UsedAt,
			BatchID:     c.BatchID,
		})
	}
	return out
}

// packageNames resolves the package label shown next to each card. Inactive
// packages still resolve; cards keep referencing them after a soft delete.
func packageNames(r *http.Request, pkgUC *usecase.PackageUseCase, cards []*model.Card) map[string]string {
	names := make(map[string]string)
	for _, c := range cards {
		if _, ok := names[c.PackageID]; ok {
			continue
		}
		pkg, err := pkgUC.Get(r.Context(), c.PackageID)
		if err != nil {
			continue
		}
		names[c.PackageID] = pkg.Name
	}
	return names
}

func cardsListHandler(cardUC *usecase.CardUseCase, pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		offset, limit := pageParams(r)

		cards, total, err := cardUC.ListCards(r.Context(), offset, limit)
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list cards")
			return
		}

		writeJSON(w, http.StatusOK, struct {
			Data   []cardResponse `json:"data"`
			Total  int            `json:"total"`
			Limit  int            `json:"limit"`
			Offset int            `json:"offset"`
		}{Data: toCardResponses(cards, packageNames(r, pkgUC, cards)), Total: total, Limit: limit, Offset: offset})
	}
}

type batchRequest struct {
	PackageID string `json:"package_id"`
	Quantity  int    `json:"quantity"`
}

func cardsGenerateHandler(cardUC *usecase.CardUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req batchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}

		res, err := cardUC.GenerateBatch(r.Context(), req.PackageID, req.Quantity)
		if err != nil {
			writeDomainError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, struct {
			BatchID string         `json:"batch_id"`
			Cards   []cardResponse `json:"cards"`
			Failed  int            `json:"failed"`
		}{BatchID: res.BatchID, Cards: toCardResponses(res.Cards, nil), Failed: res.Failed})
	}
}

func cardsBatchHandler(cardUC *usecase.CardUseCase, pkgUC *usecase.PackageUseCase) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cards, err := cardUC.ListBatch(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, http.StatusInternalServerError, "failed to list batch")
			return
		}
		writeJSON(w, http.StatusOK, struct {
			Data []cardResponse `json:"data"`
		}{Data: toCardResponses(cards, packageNames(r, pkgUC, cards))})
	}
}

func pageParams(r *http.Request) (offset, limit int) {
	offset, _ = strconv.Atoi(r.URL.Query().Get("offset"))
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > 200 {
		limit = 50 // Default page size
	}
	if offset < 0 {
		offset = 0
	}
	return offset, limit
}
