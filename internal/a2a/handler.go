package a2a

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/BerylCAtieno/nutrigenius-agent/internal/planner"
)

// DefaultContextID is the session used when a message carries no contextId.
const DefaultContextID = "a2a"

type A2AHandler struct {
	service *planner.Service
	card    []byte
	logger  *slog.Logger
}

func NewA2AHandler(service *planner.Service, card []byte, logger *slog.Logger) *A2AHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &A2AHandler{
		service: service,
		card:    card,
		logger:  logger,
	}
}

// RequestLoggingMiddleware logs every request body at debug level and the
// response status once the handler returns.
func RequestLoggingMiddleware(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		if c.Request.Body != nil && logger.Enabled(c.Request.Context(), slog.LevelDebug) {
			bodyBytes, _ := io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewReader(bodyBytes))
			logger.Debug("Incoming request",
				"method", c.Request.Method,
				"path", c.Request.URL.Path,
				"body", string(bodyBytes))
		}

		c.Next()

		logger.Info("Request handled",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// ServeAgentCard serves the agent card
func (h *A2AHandler) ServeAgentCard(c *gin.Context) {
	if len(h.card) == 0 {
		h.logger.Error("Agent card not loaded")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Agent card not available"})
		return
	}
	c.Data(http.StatusOK, "application/json", h.card)
}

// HandlePlanner processes A2A messages
func (h *A2AHandler) HandlePlanner(c *gin.Context) {
	bodyBytes, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.logger.Error("Failed to read request body", "error", err)
		h.sendErrorResponse(c, nil, "Failed to read request body", CodeParseError)
		return
	}

	var rpcReq JSONRPCRequest
	if err := json.Unmarshal(bodyBytes, &rpcReq); err != nil || (rpcReq.JSONRPC == "" && rpcReq.Method == "") {
		// Try parsing without JSON-RPC wrapper
		h.handleDirectMessage(c, bodyBytes)
		return
	}

	if rpcReq.JSONRPC != "2.0" {
		h.logger.Warn("Invalid JSON-RPC version", "version", rpcReq.JSONRPC)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid JSON-RPC version", CodeInvalidRequest)
		return
	}

	switch rpcReq.Method {
	case "agent/task", "message/send":
		h.handleTask(c, rpcReq)
	default:
		h.logger.Warn("Unknown method", "method", rpcReq.Method)
		h.sendErrorResponse(c, rpcReq.ID, fmt.Sprintf("Method not found: %s", rpcReq.Method), CodeMethodNotFound)
	}
}

// handleDirectMessage handles a message sent without the JSON-RPC wrapper
func (h *A2AHandler) handleDirectMessage(c *gin.Context, bodyBytes []byte) {
	var msgParams MessageParams
	if err := json.Unmarshal(bodyBytes, &msgParams); err != nil || len(msgParams.Message.Parts) == 0 {
		h.logger.Warn("Failed to parse request", "error", err)
		h.sendErrorResponse(c, nil, "Invalid request format", CodeParseError)
		return
	}

	result := h.process(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, "direct-message", result)
}

func (h *A2AHandler) handleTask(c *gin.Context, rpcReq JSONRPCRequest) {
	var msgParams MessageParams
	if err := json.Unmarshal(rpcReq.Params, &msgParams); err != nil {
		h.logger.Warn("Invalid parameters", "error", err)
		h.sendErrorResponse(c, rpcReq.ID, "Invalid parameters", CodeInvalidParams)
		return
	}

	result := h.process(c.Request.Context(), msgParams.Message)
	h.sendSuccessResponse(c, rpcReq.ID, result)
}

// process runs the command carried by msg and wraps the outcome as a task.
func (h *A2AHandler) process(ctx context.Context, msg A2AMessage) TaskResult {
	session := msg.ContextID
	if session == "" {
		session = DefaultContextID
	}
	taskID := msg.TaskID
	if taskID == "" {
		taskID = uuid.New().String()
	}

	text, data := extractInput(msg)
	cmd := parseCommand(text, data)
	h.logger.Info("A2A command", "session_id", session, "task_id", taskID, "kind", cmd.kind)

	switch cmd.kind {
	case commandShow:
		plan, err := h.service.CurrentPlan(ctx, session)
		if err != nil {
			return h.createErrorTaskResult(taskID, session, "Failed to load meal plan", err)
		}
		view := planner.BuildView(plan, nil)
		return h.createSuccessTaskResult(taskID, session, "Meal Plan", formatPlanResponse(view), view)

	case commandGenerate:
		gen, err := h.service.GeneratePlan(ctx, session, cmd.request)
		if err != nil {
			return h.createErrorTaskResult(taskID, session, "Failed to generate meal plan", err)
		}
		view := planner.BuildView(gen.Plan, gen.Report)
		return h.createSuccessTaskResult(taskID, session, "Meal Plan", formatPlanResponse(view), view)

	case commandSwap:
		suggestion, err := h.service.SuggestSwap(ctx, session, cmd.foodItem)
		if err != nil {
			return h.createErrorTaskResult(taskID, session, "Failed to suggest a food swap", err)
		}
		return h.createSuccessTaskResult(taskID, session, "Food Swap", formatSwapResponse(cmd.foodItem, suggestion), suggestion)

	default:
		return h.createInputRequiredTaskResult(taskID, session, usageText)
	}
}

func (h *A2AHandler) createSuccessTaskResult(taskID, session, name, text string, data any) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: session,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateCompleted,
			Timestamp: Timestamp(),
			Message:   agentMessage(taskID, session, text),
		},
		Artifacts: []Artifact{
			{
				ArtifactID: uuid.New().String(),
				Name:       name,
				Parts: []MessagePart{
					TextPart(text),
					DataPart(data),
				},
			},
		},
	}
}

func (h *A2AHandler) createInputRequiredTaskResult(taskID, session, text string) TaskResult {
	return TaskResult{
		ID:        taskID,
		ContextID: session,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateInputRequired,
			Timestamp: Timestamp(),
			Message:   agentMessage(taskID, session, text),
		},
	}
}

// createErrorTaskResult asks for more input on recoverable errors and fails the task otherwise.
func (h *A2AHandler) createErrorTaskResult(taskID, session, action string, err error) TaskResult {
	var verr *planner.ValidationError
	switch {
	case errors.As(err, &verr):
		return h.createInputRequiredTaskResult(taskID, session, formatFieldErrors(verr)+"\n\n"+usageText)
	case errors.Is(err, planner.ErrNoPlan):
		return h.createInputRequiredTaskResult(taskID, session, "No meal plan found. Generate a meal plan first.")
	case errors.Is(err, planner.ErrNoProfile):
		return h.createInputRequiredTaskResult(taskID, session, "No user profile saved. Save your profile before requesting a food swap.")
	}

	h.logger.Error(action, "session_id", session, "task_id", taskID, "error", err)

	msg := fmt.Sprintf("%s: %v", action, err)
	if errors.Is(err, planner.ErrGenerationInProgress) {
		msg = "A request for this conversation is already in progress. Please wait for it to finish."
	}

	return TaskResult{
		ID:        taskID,
		ContextID: session,
		Kind:      "task",
		Status: TaskStatus{
			State:     StateFailed,
			Timestamp: Timestamp(),
			Message:   agentMessage(taskID, session, msg),
		},
	}
}

func agentMessage(taskID, session, text string) *A2AMessage {
	return &A2AMessage{
		Kind:      "message",
		Role:      RoleAgent,
		MessageID: uuid.New().String(),
		TaskID:    taskID,
		ContextID: session,
		Parts:     []MessagePart{TextPart(text)},
	}
}

func formatFieldErrors(verr *planner.ValidationError) string {
	keys := make([]string, 0, len(verr.Fields))
	for k := range verr.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := make([]string, 0, len(keys))
	for _, k := range keys {
		lines = append(lines, "- "+verr.Fields[k])
	}
	return "Some details are missing:\n" + strings.Join(lines, "\n")
}

func (h *A2AHandler) sendSuccessResponse(c *gin.Context, id any, result any) {
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Result:  result,
	})
}

func (h *A2AHandler) sendErrorResponse(c *gin.Context, id any, message string, code int) {
	// JSON-RPC errors are sent with 200 OK
	c.JSON(http.StatusOK, JSONRPCResponse{
		JSONRPC: "2.0",
		ID:      id,
		Error: &JSONRPCError{
			Code:    code,
			Message: message,
		},
	})
}
