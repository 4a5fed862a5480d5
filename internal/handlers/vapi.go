package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/playmaker-live/playmaker/internal/chat"
	"github.com/playmaker-live/playmaker/internal/log"
	"github.com/playmaker-live/playmaker/internal/notify"
)

// VapiHandler serves the voice-assistant surface: the webhook Vapi
// calls with user questions, outbound call initiation, and direct SMS.
type VapiHandler struct {
	oracle chat.Oracle
	caller notify.VoiceCallInitiator
	sender *notify.SenderChain
}

// NewVapiHandler creates a voice-assistant handler. oracle and caller
// may be nil when the upstream services are not configured.
func NewVapiHandler(oracle chat.Oracle, caller notify.VoiceCallInitiator, sender *notify.SenderChain) *VapiHandler {
	return &VapiHandler{
		oracle: oracle,
		caller: caller,
		sender: sender,
	}
}

// Vapi sends two webhook shapes depending on assistant configuration:
// the legacy functionCall message and the newer toolCalls list. Both
// carry the user's question inside parameters/arguments.
type vapiWebhookRequest struct {
	Message struct {
		Type         string `json:"type"`
		FunctionCall struct {
			Name       string          `json:"name"`
			Parameters json.RawMessage `json:"parameters"`
		} `json:"functionCall"`
		ToolCalls []struct {
			ID       string `json:"id"`
			Function struct {
				Name      string          `json:"name"`
				Arguments json.RawMessage `json:"arguments"`
			} `json:"function"`
		} `json:"toolCalls"`
	} `json:"message"`
}

type vapiToolResult struct {
	ToolCallID string `json:"toolCallId"`
	Result     string `json:"result"`
}

// HandleWebhook answers assistant questions with live context
// POST /api/vapi/webhook
func (h *VapiHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if h.oracle == nil || !h.oracle.Enabled() {
		respondError(w, http.StatusInternalServerError, "assistant is not configured", nil)
		return
	}

	var req vapiWebhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid webhook payload", err)
		return
	}

	ctx := r.Context()

	if len(req.Message.ToolCalls) > 0 {
		results := make([]vapiToolResult, 0, len(req.Message.ToolCalls))
		for _, tc := range req.Message.ToolCalls {
			query := extractQuery(tc.Function.Arguments)
			results = append(results, vapiToolResult{
				ToolCallID: tc.ID,
				Result:     h.answer(ctx, query),
			})
		}
		respondJSON(w, http.StatusOK, map[string]interface{}{"results": results})
		return
	}

	query := extractQuery(req.Message.FunctionCall.Parameters)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"result": h.answer(ctx, query),
	})
}

// answer runs the question through the model and flattens the reply
// for speech output. Failures become a spoken apology rather than an
// HTTP error so the call is not dropped mid-conversation.
func (h *VapiHandler) answer(ctx context.Context, query string) string {
	if query == "" {
		return "I didn't catch a question. Could you ask again?"
	}

	reply, err := h.oracle.Ask(ctx, query)
	if err != nil {
		log.Warn("assistant query failed", zap.Error(err))
		return "Sorry, I couldn't look that up right now. Please try again in a moment."
	}
	return chat.StripMarkdown(reply)
}

// extractQuery pulls the question out of a parameters object, which
// arrives either as JSON or as a JSON-encoded string of JSON.
func extractQuery(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}

	var params struct {
		Query    string `json:"query"`
		Question string `json:"question"`
	}
	if err := json.Unmarshal(raw, &params); err != nil {
		// Arguments sometimes arrive double-encoded
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return ""
		}
		if err := json.Unmarshal([]byte(s), &params); err != nil {
			return ""
		}
	}

	if params.Query != "" {
		return strings.TrimSpace(params.Query)
	}
	return strings.TrimSpace(params.Question)
}

type callRequest struct {
	PhoneNumber string `json:"phoneNumber"`
}

// HandleStartCall triggers an outbound assistant call
// POST /api/vapi/call
func (h *VapiHandler) HandleStartCall(w http.ResponseWriter, r *http.Request) {
	if h.caller == nil || !h.caller.Enabled() {
		respondError(w, http.StatusInternalServerError, "voice calling is not configured", nil)
		return
	}

	var req callRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" {
		respondError(w, http.StatusBadRequest, "phoneNumber is required", nil)
		return
	}

	callID, err := h.caller.StartCall(r.Context(), req.PhoneNumber)
	if err != nil {
		respondAppError(w, "failed to start call", err)
		return
	}

	log.Info("outbound call started", zap.String("call_id", callID))
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status": "calling",
		"callId": callID,
	})
}

type smsRequest struct {
	PhoneNumber string `json:"phoneNumber"`
	Message     string `json:"message"`
}

// HandleSendSMS sends a one-off text message
// POST /api/vapi/sms
func (h *VapiHandler) HandleSendSMS(w http.ResponseWriter, r *http.Request) {
	if h.sender == nil || !h.sender.Enabled() {
		respondError(w, http.StatusInternalServerError, "SMS delivery is not configured", nil)
		return
	}

	var req smsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	if strings.TrimSpace(req.PhoneNumber) == "" || strings.TrimSpace(req.Message) == "" {
		respondError(w, http.StatusBadRequest, "phoneNumber and message are required", nil)
		return
	}

	if err := h.sender.SendSMS(r.Context(), req.PhoneNumber, req.Message); err != nil {
		respondAppError(w, "failed to send message", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"status": "sent"})
}
