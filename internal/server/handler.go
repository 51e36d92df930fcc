package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/at-ishikawa/flashnote/internal/assist"
	"github.com/at-ishikawa/flashnote/internal/logger"
	"github.com/at-ishikawa/flashnote/internal/saving"
)

const maxBodyBytes = 4 << 20

var errDraftsDisabled = errors.New("drafts are disabled")

// Handler serves the notebook save API.
type Handler struct {
	orchestrator *saving.Orchestrator
	history      *saving.History
	drafts       saving.DraftStore
	assist       *assist.Runner
	logger       logger.Logger
	now          func() time.Time
}

// NewHandler creates a Handler. drafts may be nil, in which case prepare and regenerate
// return previews without a draft id and the draft routes answer 503.
func NewHandler(orchestrator *saving.Orchestrator, history *saving.History, drafts saving.DraftStore, runner *assist.Runner, log logger.Logger) *Handler {
	return &Handler{
		orchestrator: orchestrator,
		history:      history,
		drafts:       drafts,
		assist:       runner,
		logger:       log,
		now:          time.Now,
	}
}

type errorResponse struct {
	Error string `json:"error"`
}

type prepareRequest struct {
	Content string `json:"content"`
}

type prepareResponse struct {
	*saving.PrepareResult
	DraftID string `json:"draftId,omitempty"`
}

type regenerateResponse struct {
	*saving.RegenerateResult
	DraftID string `json:"draftId,omitempty"`
}

// confirmRequest either names a draft or carries the whole confirm payload.
type confirmRequest struct {
	DraftID string `json:"draftId"`
	// BaseRevision shadows the embedded field so a missing value is not read as revision 0.
	BaseRevision *int64 `json:"baseRevision"`
	saving.ConfirmRequest
}

type confirmRegenerationRequest struct {
	DraftID string `json:"draftId"`
	saving.ConfirmRegenerationRequest
}

type contentRequest struct {
	Content string `json:"content"`
}

type assistRequest struct {
	assist.Command
	Content string `json:"content"`
	Offset  int    `json:"offset"`
}

type assistResponse struct {
	Content string `json:"content"`
	Text    string `json:"text"`
}

func (h *Handler) Healthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) Prepare(w http.ResponseWriter, r *http.Request) {
	notebookID, ok := h.pathID(w, r, "notebookID")
	if !ok {
		return
	}
	var body prepareRequest
	if !h.decode(w, r, &body) {
		return
	}

	result, err := h.orchestrator.Prepare(r.Context(), saving.PrepareRequest{
		NotebookID: notebookID,
		Content:    body.Content,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := prepareResponse{PrepareResult: result}
	if result.HasNewContent && h.drafts != nil {
		draft := saving.NewSaveDraft(result, body.Content, h.now())
		if err := h.drafts.Put(r.Context(), draft); err != nil {
			h.writeError(w, r, fmt.Errorf("store draft: %w", err))
			return
		}
		resp.DraftID = draft.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) Confirm(w http.ResponseWriter, r *http.Request) {
	notebookID, ok := h.pathID(w, r, "notebookID")
	if !ok {
		return
	}
	var body confirmRequest
	if !h.decode(w, r, &body) {
		return
	}
	idempotencyKey := r.Header.Get("Idempotency-Key")

	req := body.ConfirmRequest
	if body.DraftID != "" {
		draft, err := h.loadDraft(r.Context(), body.DraftID, saving.DraftKindSave)
		if errors.Is(err, saving.ErrNotFound) {
			// A confirmed draft is deleted, so a retry finds only the recorded result.
			h.replayConfirm(w, r, notebookID, idempotencyKey, body.DraftID, err)
			return
		}
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if draft.NotebookID != notebookID {
			h.writeError(w, r, fmt.Errorf("%w: draft %s belongs to notebook %d", saving.ErrInvalidRequest, draft.ID, draft.NotebookID))
			return
		}
		if idempotencyKey == "" {
			idempotencyKey = draft.ID
		}
		req = draft.ConfirmRequest(idempotencyKey)
	} else {
		if body.BaseRevision == nil {
			h.writeError(w, r, fmt.Errorf("%w: baseRevision is required", saving.ErrInvalidRequest))
			return
		}
		req.BaseRevision = *body.BaseRevision
	}
	req.NotebookID = notebookID
	req.IdempotencyKey = idempotencyKey

	result, err := h.orchestrator.Confirm(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if body.DraftID != "" {
		h.forgetDraft(r.Context(), body.DraftID)
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) replayConfirm(w http.ResponseWriter, r *http.Request, notebookID int64, idempotencyKey, draftID string, draftErr error) {
	if idempotencyKey == "" {
		idempotencyKey = draftID
	}
	result, err := h.orchestrator.ConfirmedResult(r.Context(), notebookID, idempotencyKey)
	if err != nil {
		if errors.Is(err, saving.ErrNotFound) {
			err = draftErr
		}
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) SaveContentOnly(w http.ResponseWriter, r *http.Request) {
	notebookID, ok := h.pathID(w, r, "notebookID")
	if !ok {
		return
	}
	var body contentRequest
	if !h.decode(w, r, &body) {
		return
	}
	if err := h.orchestrator.SaveContentOnly(r.Context(), notebookID, body.Content); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) ListNotebooks(w http.ResponseWriter, r *http.Request) {
	var studySetID int64
	if v := r.URL.Query().Get("studySetId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil || id <= 0 {
			h.writeError(w, r, fmt.Errorf("%w: studySetId must be a positive integer", saving.ErrInvalidRequest))
			return
		}
		studySetID = id
	}
	notebooks, err := h.history.ListNotebooks(r.Context(), studySetID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"notebooks": notebooks})
}

func (h *Handler) ListSaves(w http.ResponseWriter, r *http.Request) {
	notebookID, ok := h.pathID(w, r, "notebookID")
	if !ok {
		return
	}
	saves, err := h.history.ListSaves(r.Context(), notebookID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"saves": saves})
}

func (h *Handler) LinkedFlashcards(w http.ResponseWriter, r *http.Request) {
	saveID, ok := h.pathID(w, r, "saveID")
	if !ok {
		return
	}
	ids, err := h.history.LinkedFlashcardIDs(r.Context(), saveID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"flashcardIds": ids})
}

func (h *Handler) Regenerate(w http.ResponseWriter, r *http.Request) {
	saveID, ok := h.pathID(w, r, "saveID")
	if !ok {
		return
	}
	var body saving.RegenerateRequest
	if !h.decode(w, r, &body) {
		return
	}
	body.SaveID = saveID

	result, err := h.orchestrator.Regenerate(r.Context(), body)
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	resp := regenerateResponse{RegenerateResult: result}
	if h.drafts != nil {
		draft := saving.NewRegenerationDraft(result, h.now())
		if err := h.drafts.Put(r.Context(), draft); err != nil {
			h.writeError(w, r, fmt.Errorf("store draft: %w", err))
			return
		}
		resp.DraftID = draft.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) ConfirmRegeneration(w http.ResponseWriter, r *http.Request) {
	saveID, ok := h.pathID(w, r, "saveID")
	if !ok {
		return
	}
	var body confirmRegenerationRequest
	if !h.decode(w, r, &body) {
		return
	}

	req := body.ConfirmRegenerationRequest
	if body.DraftID != "" {
		draft, err := h.loadDraft(r.Context(), body.DraftID, saving.DraftKindRegeneration)
		if err != nil {
			h.writeError(w, r, err)
			return
		}
		if draft.SaveID != saveID {
			h.writeError(w, r, fmt.Errorf("%w: draft %s belongs to save %d", saving.ErrInvalidRequest, draft.ID, draft.SaveID))
			return
		}
		req = draft.ConfirmRegenerationRequest()
	}
	req.SaveID = saveID

	ids, err := h.orchestrator.ConfirmRegeneration(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if body.DraftID != "" {
		h.forgetDraft(r.Context(), body.DraftID)
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"flashcardIds": ids})
}

func (h *Handler) GetDraft(w http.ResponseWriter, r *http.Request) {
	draft, err := h.loadDraft(r.Context(), chi.URLParam(r, "draftID"), "")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// DeleteDraft cancels a preview. Nothing was persisted, so this only drops the draft.
func (h *Handler) DeleteDraft(w http.ResponseWriter, r *http.Request) {
	if h.drafts == nil {
		h.writeError(w, r, errDraftsDisabled)
		return
	}
	if err := h.drafts.Delete(r.Context(), chi.URLParam(r, "draftID")); err != nil {
		h.writeError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) EditPreview(w http.ResponseWriter, r *http.Request) {
	var edit saving.PreviewEdit
	if !h.decode(w, r, &edit) {
		return
	}
	h.updateDraft(w, r, func(d *saving.Draft) error {
		return d.EditPreview(chi.URLParam(r, "tempID"), edit)
	})
}

func (h *Handler) RemovePreview(w http.ResponseWriter, r *http.Request) {
	h.updateDraft(w, r, func(d *saving.Draft) error {
		return d.RemovePreview(chi.URLParam(r, "tempID"))
	})
}

func (h *Handler) Assist(w http.ResponseWriter, r *http.Request) {
	var body assistRequest
	if !h.decode(w, r, &body) {
		return
	}
	content, result, err := h.assist.Run(r.Context(), body.Content, body.Offset, body.Command)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, assistResponse{Content: content, Text: result.Text})
}

func (h *Handler) updateDraft(w http.ResponseWriter, r *http.Request, update func(d *saving.Draft) error) {
	draft, err := h.loadDraft(r.Context(), chi.URLParam(r, "draftID"), "")
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := update(draft); err != nil {
		h.writeError(w, r, err)
		return
	}
	if err := h.drafts.Put(r.Context(), draft); err != nil {
		h.writeError(w, r, fmt.Errorf("store draft: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, draft)
}

// loadDraft returns the draft with id. kind is not checked when empty.
func (h *Handler) loadDraft(ctx context.Context, id string, kind saving.DraftKind) (*saving.Draft, error) {
	if h.drafts == nil {
		return nil, errDraftsDisabled
	}
	draft, err := h.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if kind != "" && draft.Kind != kind {
		return nil, fmt.Errorf("%w: draft %s is a %s draft", saving.ErrInvalidRequest, id, draft.Kind)
	}
	return draft, nil
}

func (h *Handler) forgetDraft(ctx context.Context, id string) {
	if err := h.drafts.Delete(ctx, id); err != nil {
		h.logger.Warn("failed to delete confirmed draft", logger.String("draft_id", id), logger.Error(err))
	}
}

func (h *Handler) pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		h.writeError(w, r, fmt.Errorf("%w: %s must be a positive integer", saving.ErrInvalidRequest, name))
		return 0, false
	}
	return id, true
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(v); err != nil {
		h.writeError(w, r, fmt.Errorf("%w: decode body: %v", saving.ErrInvalidRequest, err))
		return false
	}
	return true
}

func (h *Handler) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := statusOf(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("request failed",
			logger.String("method", r.Method),
			logger.String("path", r.URL.Path),
			logger.Int("status", status),
			logger.Error(err))
	}
	writeJSON(w, status, errorResponse{Error: message})
}

func statusOf(err error) (int, string) {
	switch {
	case errors.Is(err, saving.ErrNotFound), errors.Is(err, saving.ErrPreviewNotFound):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, saving.ErrInvalidRequest), errors.Is(err, assist.ErrInvalidCommand):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, saving.ErrBaselineConflict), errors.Is(err, saving.ErrConfirmInProgress):
		return http.StatusConflict, err.Error()
	case errors.Is(err, saving.ErrNothingToRegenerate):
		return http.StatusUnprocessableEntity, err.Error()
	case errors.Is(err, saving.ErrGenerationFailed), errors.Is(err, assist.ErrAssistFailed):
		return http.StatusBadGateway, err.Error()
	case errors.Is(err, errDraftsDisabled):
		return http.StatusServiceUnavailable, err.Error()
	case errors.Is(err, saving.ErrPersistence):
		return http.StatusInternalServerError, saving.ErrPersistence.Error()
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout, "request timed out"
	}
	return http.StatusInternalServerError, "internal error"
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
