package apihandlers

import (
	"context"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/go-playground/validator/v10"
	"github.com/jinzhu/copier"
	"github.com/tmc/langchaingo/llms"

	"github.com/cropwise/cropwise/config"
	"github.com/cropwise/cropwise/internal"
	"github.com/cropwise/cropwise/pkg/models"
	"github.com/cropwise/cropwise/pkg/server/handlertools"
)

var log = internal.GetLogger()

var validate = validator.New()

const invalidBodyTitle = "Invalid request body"

// StatusHandler godoc
//
//	@Summary	Returns knowledge base and cache statistics
//	@Tags		ai
//	@Produce	json
//	@Param		probe	query		bool	false	"Check that the language model answers"
//	@Success	200		{object}	models.StatusResponse
//	@Failure	500		{object}	handlertools.ErrorResponse
//	@Router		/api/ai/status [get]
func StatusHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		probe, err := handlertools.BoolFromQuery(r, "probe")
		if err != nil {
			handlertools.RenderError(
				w, "Failed to get AI status", models.NewBadRequestError(err.Error()), http.StatusBadRequest,
			)
			return
		}

		storeBytes := appState.DocumentStore.SizeBytes()
		stats := models.StatusStats{
			VectorDBSize: appState.DocumentStore.Len(),
			CacheSize:    appState.Cache.Len(ctx),
			CacheStats:   appState.Cache.Stats(ctx),
			StoreBytes:   storeBytes,
			StoreSize:    humanize.Bytes(uint64(storeBytes)),
			LLM:          "demo",
			Embedder:     appState.Embedder.Name(),
			DemoMode:     appState.LLM == nil,
		}
		if appState.LLM != nil {
			stats.LLM = appState.LLM.Name()
			if probe {
				reachable := probeLLM(ctx, appState.LLM, appState.Config)
				stats.LLMReachable = &reachable
			}
		}

		handlertools.RenderSuccess(w, http.StatusOK, "", models.StatusResponse{
			Status:    "operational",
			Stats:     stats,
			Timestamp: time.Now().UTC(),
		})
	}
}

func probeLLM(ctx context.Context, llm models.LLM, cfg *config.Config) bool {
	timeout := cfg.LLM.ProbeTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	_, err := llm.Call(ctx, "Reply with OK.", "ping", llms.WithMaxTokens(5))
	if err != nil {
		log.Warnf("llm probe failed: %s", models.NewModelUnreachableError("probe", err))
		return false
	}
	return true
}

// RecommendHandler godoc
//
//	@Summary	Generates crop recommendations for a farmer
//	@Tags		ai
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.RecommendationRequest	true	"Farmer context"
//	@Success	200		{object}	models.RecommendationResponse
//	@Failure	400		{object}	handlertools.ErrorResponse
//	@Failure	500		{object}	handlertools.ErrorResponse
//	@Router		/api/ai/recommend [post]
func RecommendHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RecommendationRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, invalidBodyTitle, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			msg := handlertools.ValidationMessage(err, "Context and farmer data are required")
			handlertools.RenderError(
				w, "Missing required data", models.NewBadRequestError(msg), http.StatusBadRequest,
			)
			return
		}

		result, err := appState.Recommender.Recommend(r.Context(), &req)
		if err != nil {
			handlertools.RenderError(
				w, "Failed to generate recommendation", err, http.StatusInternalServerError,
			)
			return
		}

		handlertools.RenderSuccess(
			w,
			http.StatusOK,
			"Recommendation generated successfully",
			models.RecommendationResponse{Recommendation: result, Timestamp: time.Now().UTC()},
		)
	}
}

// ChatHandler godoc
//
//	@Summary	Answers a farmer's chat message
//	@Tags		ai
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.ChatRequest	true	"Chat message"
//	@Success	200		{object}	models.ChatResponse
//	@Failure	400		{object}	handlertools.ErrorResponse
//	@Failure	500		{object}	handlertools.ErrorResponse
//	@Router		/api/ai/chat [post]
func ChatHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ChatRequest
		if err := handlertools.DecodeJSON(r, &req); err != nil {
			handlertools.RenderError(w, invalidBodyTitle, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(req); err != nil {
			msg := handlertools.ValidationMessage(err, "Message is required")
			handlertools.RenderError(
				w, "Missing message", models.NewBadRequestError(msg), http.StatusBadRequest,
			)
			return
		}

		reply, err := appState.ChatResponder.Respond(
			r.Context(), req.Message, req.SessionContext, req.Language,
		)
		if err != nil {
			handlertools.RenderError(
				w, "Failed to generate chat response", err, http.StatusInternalServerError,
			)
			return
		}

		handlertools.RenderSuccess(
			w,
			http.StatusOK,
			"Chat response generated successfully",
			models.ChatResponse{Response: reply, Timestamp: time.Now().UTC()},
		)
	}
}

// KnowledgeHandler godoc
//
//	@Summary	Adds a document to the knowledge base
//	@Tags		ai
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.KnowledgePayload	true	"Document"
//	@Success	201		{object}	models.KnowledgeResponse
//	@Failure	400		{object}	handlertools.ErrorResponse
//	@Failure	500		{object}	handlertools.ErrorResponse
//	@Router		/api/ai/knowledge [post]
func KnowledgeHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload models.KnowledgePayload
		if err := handlertools.DecodeJSON(r, &payload); err != nil {
			handlertools.RenderError(w, invalidBodyTitle, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(payload); err != nil {
			msg := handlertools.ValidationMessage(err, "Content is required")
			handlertools.RenderError(
				w, "Missing content", models.NewBadRequestError(msg), http.StatusBadRequest,
			)
			return
		}

		doc, err := appState.KnowledgeBase.AddDocument(r.Context(), payload.Content, payload.Metadata)
		if err != nil {
			handlertools.RenderError(
				w, "Failed to add to knowledge base", err, http.StatusInternalServerError,
			)
			return
		}

		var docResponse models.DocumentResponse
		if err := copier.Copy(&docResponse, doc); err != nil {
			handlertools.RenderError(
				w, "Failed to add to knowledge base", err, http.StatusInternalServerError,
			)
			return
		}

		handlertools.RenderSuccess(
			w,
			http.StatusCreated,
			"Document added to knowledge base successfully",
			models.KnowledgeResponse{Document: docResponse, Timestamp: time.Now().UTC()},
		)
	}
}

// SearchHandler godoc
//
//	@Summary	Searches the knowledge base
//	@Tags		ai
//	@Accept		json
//	@Produce	json
//	@Param		request	body		models.SearchPayload	true	"Search query"
//	@Success	200		{object}	models.SearchResponse
//	@Failure	400		{object}	handlertools.ErrorResponse
//	@Failure	500		{object}	handlertools.ErrorResponse
//	@Router		/api/ai/search [post]
func SearchHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload models.SearchPayload
		if err := handlertools.DecodeJSON(r, &payload); err != nil {
			handlertools.RenderError(w, invalidBodyTitle, err, http.StatusBadRequest)
			return
		}
		if err := validate.Struct(payload); err != nil {
			msg := handlertools.ValidationMessage(err, "Query is required")
			handlertools.RenderError(
				w, "Missing query", models.NewBadRequestError(msg), http.StatusBadRequest,
			)
			return
		}

		results, err := appState.Searcher.Search(r.Context(), payload.Query, models.SearchOptions{
			Limit:      payload.Limit,
			Threshold:  payload.Threshold,
			SearchType: payload.SearchType,
			MMRLambda:  payload.MMRLambda,
		})
		if err != nil {
			handlertools.RenderError(
				w, "Failed to search knowledge base", err, http.StatusInternalServerError,
			)
			return
		}

		resultResponses := make([]models.SearchResultResponse, len(results))
		if err := copier.Copy(&resultResponses, &results); err != nil {
			handlertools.RenderError(
				w, "Failed to search knowledge base", err, http.StatusInternalServerError,
			)
			return
		}

		handlertools.RenderSuccess(w, http.StatusOK, "Search completed successfully", models.SearchResponse{
			Results:   resultResponses,
			Query:     payload.Query,
			Count:     len(resultResponses),
			Timestamp: time.Now().UTC(),
		})
	}
}

// HealthHandler godoc
//
//	@Summary	Reports that the service is up
//	@Tags		health
//	@Produce	json
//	@Success	200	{object}	models.HealthResponse
//	@Router		/health [get]
func HealthHandler(appState *models.AppState) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		llmStatus := "Demo"
		if appState.LLM != nil {
			llmStatus = "Ready"
		}

		w.Header().Set("Content-Type", "application/json")
		if err := handlertools.EncodeJSON(w, models.HealthResponse{
			Status:  "OK",
			Message: "AI Service is running",
			Version: config.Version,
			Services: map[string]string{
				"llm":       llmStatus,
				"rag":       "Ready",
				"embedding": appState.Embedder.Name(),
			},
			Timestamp: time.Now().UTC(),
		}); err != nil {
			log.Errorf("failed to encode health response: %s", err)
		}
	}
}
