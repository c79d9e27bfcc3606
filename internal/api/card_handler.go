package api

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/cardholder-api/internal/api/shared"
	"github.com/phrazzld/cardholder-api/internal/dto"
	"github.com/phrazzld/cardholder-api/internal/platform/logger"
	"github.com/phrazzld/cardholder-api/internal/service"
)

// CardHandler handles payment card HTTP requests
type CardHandler struct {
	cardService service.CardService
	logger      *slog.Logger
}

// NewCardHandler creates a new CardHandler
func NewCardHandler(cardService service.CardService, logger *slog.Logger) *CardHandler {
	if cardService == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("cardService cannot be nil for CardHandler")
	}
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for CardHandler")
	}

	return &CardHandler{
		cardService: cardService,
		logger:      logger.With(slog.String("component", "card_handler")),
	}
}

// ListCards handles GET /cards requests
// Supports active, expires_after and expires_before filters plus page, size and sort.
func (h *CardHandler) ListCards(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter, err := parseCardFilter(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}
	page, err := parsePageRequest(q)
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	result, err := h.cardService.FindAll(r.Context(), filter, page)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, result)
}

// GetCard handles GET /cards/{id} requests
func (h *CardHandler) GetCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.FindDtoByID(r.Context(), id)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to get card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// GetUserCards handles GET /cards/user/{userId} requests
func (h *CardHandler) GetUserCards(w http.ResponseWriter, r *http.Request) {
	userID, err := getPathID(r, "userId")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	cards, err := h.cardService.FindAllByUserID(r.Context(), userID)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to list cards")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, cards)
}

// CreateCard handles POST /cards requests
func (h *CardHandler) CreateCard(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req dto.CardCreate
	if err := decodeAndValidate(r, &req); err != nil {
		log.Debug("invalid create card request", slog.String("error", err.Error()))
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.Create(r.Context(), req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to create card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, card)
}

// UpdateCard handles PUT /cards/{id} requests
// Only the number and expiration date can change.
func (h *CardHandler) UpdateCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	var req dto.CardUpdate
	if err := decodeAndValidate(r, &req); err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.Update(r.Context(), id, req)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to update card")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}

// DeleteCard handles DELETE /cards/{id} requests
func (h *CardHandler) DeleteCard(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	if err := h.cardService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err, "Failed to delete card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ActivateCard handles PATCH /cards/{id}/activate requests
func (h *CardHandler) ActivateCard(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, true)
}

// DeactivateCard handles PATCH /cards/{id}/deactivate requests
func (h *CardHandler) DeactivateCard(w http.ResponseWriter, r *http.Request) {
	h.changeStatus(w, r, false)
}

func (h *CardHandler) changeStatus(w http.ResponseWriter, r *http.Request, active bool) {
	id, err := getPathID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err, "")
		return
	}

	card, err := h.cardService.ChangeStatus(r.Context(), id, active)
	if err != nil {
		HandleAPIError(w, r, err, "Failed to change card status")
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, card)
}
