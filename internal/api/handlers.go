package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"github.com/kdrennan/trade-ledger-service/internal/database"
	"github.com/kdrennan/trade-ledger-service/internal/kafka"
	"github.com/kdrennan/trade-ledger-service/internal/models"
)

// Store is the ledger repository the handlers run against
type Store interface {
	CreateStock(s *models.Stock) error
	GetStockByID(id int64) (*models.Stock, error)
	GetAllStocks() ([]*models.Stock, error)
	UpdateStock(s *models.Stock) error
	DeleteStock(id int64) error

	CreateTrade(t *models.Trade) error
	GetTradeByID(id int64) (*models.Trade, error)
	GetAllTrades() ([]*models.Trade, error)
	UpdateTrade(t *models.Trade) error
	DeleteTrade(id int64) error

	GetDashboardSummary(today time.Time) (*models.DashboardSummary, error)
}

// Handler holds dependencies for HTTP handlers
type Handler struct {
	store    Store
	producer *kafka.Producer
}

// NewHandler creates a new Handler. producer may be nil; events are then
// skipped.
func NewHandler(store Store, producer *kafka.Producer) *Handler {
	return &Handler{
		store:    store,
		producer: producer,
	}
}

// GetSummary handles GET /summary/
func (h *Handler) GetSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.store.GetDashboardSummary(time.Now())
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newSummaryResponse(summary))
}

// stockRequest carries stock create/update payloads. Pointer fields
// distinguish absent from zero for PATCH.
type stockRequest struct {
	Symbol             *string          `json:"symbol"`
	CompanyName        *string          `json:"company_name"`
	LastPrice          *decimal.Decimal `json:"last_price"`
	DailyChangePercent *decimal.Decimal `json:"daily_change_percent"`
}

func (req *stockRequest) apply(s *models.Stock, partial bool) error {
	vErr := newValidationError()

	if req.Symbol != nil {
		if *req.Symbol == "" {
			vErr.add("symbol", "must not be empty")
		}
		s.Symbol = *req.Symbol
	} else if !partial {
		vErr.add("symbol", "this field is required")
	}

	if req.CompanyName != nil {
		s.CompanyName = *req.CompanyName
	} else if !partial {
		vErr.add("company_name", "this field is required")
	}

	if req.LastPrice != nil {
		s.LastPrice = *req.LastPrice
	}
	if req.DailyChangePercent != nil {
		s.DailyChangePercent = *req.DailyChangePercent
	}

	return vErr.orNil()
}

// ListStocks handles GET /stocks/
func (h *Handler) ListStocks(w http.ResponseWriter, r *http.Request) {
	stocks, err := h.store.GetAllStocks()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newStockListResponse(stocks))
}

// CreateStock handles POST /stocks/
func (h *Handler) CreateStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var stock models.Stock
	if err := req.apply(&stock, false); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.CreateStock(&stock); err != nil {
		respondError(w, err)
		return
	}

	h.publishStockEvent(r, kafka.EventStockAdded, &stock)
	respondJSON(w, http.StatusCreated, newStockResponse(&stock))
}

// GetStock handles GET /stocks/{id}/
func (h *Handler) GetStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.store.GetStockByID(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newStockResponse(stock))
}

// UpdateStock handles PUT and PATCH /stocks/{id}/
func (h *Handler) UpdateStock(w http.ResponseWriter, r *http.Request) {
	var req stockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	stock, err := h.store.GetStockByID(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	partial := r.Method == http.MethodPatch
	if err := req.apply(stock, partial); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.UpdateStock(stock); err != nil {
		respondError(w, err)
		return
	}

	h.publishStockEvent(r, kafka.EventStockUpdated, stock)
	respondJSON(w, http.StatusOK, newStockResponse(stock))
}

// DeleteStock handles DELETE /stocks/{id}/. Trades of the stock are removed
// by the cascade.
func (h *Handler) DeleteStock(w http.ResponseWriter, r *http.Request) {
	stock, err := h.store.GetStockByID(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.DeleteStock(stock.ID); err != nil {
		respondError(w, err)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishStockRemoved(r.Context(), stock.Symbol); err != nil {
			slog.Warn("failed to publish stock event", slog.Any("error", err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// tradeRequest carries trade create/update payloads
type tradeRequest struct {
	Stock    *int64           `json:"stock"`
	Action   *string          `json:"action"`
	Quantity *int64           `json:"quantity"`
	Notional *decimal.Decimal `json:"notional"`
	Status   *string          `json:"status"`
	Notes    *string          `json:"notes"`
}

func (req *tradeRequest) apply(t *models.Trade, partial bool) error {
	vErr := newValidationError()

	if req.Stock != nil {
		t.StockID = *req.Stock
	} else if !partial {
		vErr.add("stock", "this field is required")
	}

	if req.Action != nil {
		action, err := models.ParseAction(*req.Action)
		if err != nil {
			vErr.add("action", "must be BUY or SELL")
		} else {
			t.Action = action
		}
	} else if !partial {
		vErr.add("action", "this field is required")
	}

	if req.Quantity != nil {
		if *req.Quantity < 0 {
			vErr.add("quantity", "must not be negative")
		} else {
			t.Quantity = *req.Quantity
		}
	} else if !partial {
		vErr.add("quantity", "this field is required")
	}

	if req.Notional != nil {
		t.Notional = *req.Notional
	} else if !partial {
		vErr.add("notional", "this field is required")
	}

	if req.Status != nil {
		t.Status = *req.Status
	}
	if req.Notes != nil {
		t.Notes = *req.Notes
	}

	return vErr.orNil()
}

// ListTrades handles GET /trades/
func (h *Handler) ListTrades(w http.ResponseWriter, r *http.Request) {
	trades, err := h.store.GetAllTrades()
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newTradeListResponse(trades))
}

// CreateTrade handles POST /trades/
func (h *Handler) CreateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	var trade models.Trade
	if err := req.apply(&trade, false); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.CreateTrade(&trade); err != nil {
		respondError(w, unknownStockAsValidation(err))
		return
	}

	h.publishTradeEvent(r, kafka.EventTradeRecorded, &trade)
	respondJSON(w, http.StatusCreated, newTradeResponse(&trade))
}

// GetTrade handles GET /trades/{id}/
func (h *Handler) GetTrade(w http.ResponseWriter, r *http.Request) {
	trade, err := h.store.GetTradeByID(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, newTradeResponse(trade))
}

// UpdateTrade handles PUT and PATCH /trades/{id}/. executed_at is read-only
// and keeps its creation value.
func (h *Handler) UpdateTrade(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	trade, err := h.store.GetTradeByID(pathID(r))
	if err != nil {
		respondError(w, err)
		return
	}

	partial := r.Method == http.MethodPatch
	if err := req.apply(trade, partial); err != nil {
		respondError(w, err)
		return
	}

	if err := h.store.UpdateTrade(trade); err != nil {
		respondError(w, unknownStockAsValidation(err))
		return
	}

	h.publishTradeEvent(r, kafka.EventTradeUpdated, trade)
	respondJSON(w, http.StatusOK, newTradeResponse(trade))
}

// DeleteTrade handles DELETE /trades/{id}/
func (h *Handler) DeleteTrade(w http.ResponseWriter, r *http.Request) {
	id := pathID(r)
	if err := h.store.DeleteTrade(id); err != nil {
		respondError(w, err)
		return
	}

	if h.producer != nil {
		if err := h.producer.PublishTradeRemoved(r.Context(), id); err != nil {
			slog.Warn("failed to publish trade event", slog.Any("error", err))
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (h *Handler) publishStockEvent(r *http.Request, eventType string, stock *models.Stock) {
	if h.producer == nil {
		return
	}
	if err := h.producer.PublishStockChange(r.Context(), eventType, stock); err != nil {
		slog.Warn("failed to publish stock event", slog.Any("error", err))
	}
}

func (h *Handler) publishTradeEvent(r *http.Request, eventType string, trade *models.Trade) {
	if h.producer == nil {
		return
	}
	if err := h.producer.PublishTradeChange(r.Context(), eventType, trade); err != nil {
		slog.Warn("failed to publish trade event", slog.Any("error", err))
	}
}

// unknownStockAsValidation turns a missing stock reference on a trade write
// into a field-level validation error instead of a 404 on the trade itself.
func unknownStockAsValidation(err error) error {
	if err != nil && errors.Is(err, database.ErrNotFound) {
		vErr := newValidationError()
		vErr.add("stock", "unknown stock")
		return vErr
	}
	return err
}

// pathID reads the {id} route variable. Routes constrain it to digits, so a
// parse failure cannot happen for matched requests.
func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
