package images

import (
	"encoding/base64"
	"errors"
	"net/http"

	"github.com/mandalnilabja/artgen/internal/generation"
	"github.com/mandalnilabja/artgen/internal/provider"
	"github.com/mandalnilabja/artgen/internal/transport/http/middleware"
	"github.com/mandalnilabja/artgen/internal/types"
	"go.uber.org/zap"
)

// Client-facing messages for generation failures.
const (
	msgNotConfigured = "Clipdrop API key not configured"
	msgTimeout       = "Image generation timed out"
)

// Generate handles POST /generate-image.
func (h *Handlers) Generate(w http.ResponseWriter, r *http.Request) {
	log := h.Logger.With(zap.String("request_id", middleware.GetRequestID(r.Context())))

	req, err := types.DecodeGenerationRequest(r.Body)
	if err != nil {
		log.Warn("bad request body", zap.Error(err))
		types.WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}

	out, err := h.Pipeline.Run(r.Context(), req)
	if err != nil {
		status, msg := errorStatus(err)
		log.Error("image generation failed", zap.Int("status", status), zap.Error(err))
		types.WriteError(w, status, msg)
		return
	}

	types.WriteJSON(w, http.StatusOK, buildResponse(req, out))
}

// buildResponse assembles the success body. The image is standard base64
// with padding; the IPFS fields are null unless publishing succeeded.
func buildResponse(req *types.GenerationRequest, out *generation.Outcome) types.GenerationResponse {
	resp := types.GenerationResponse{
		Success:   true,
		ImageData: base64.StdEncoding.EncodeToString(out.Image.Data),
		TokenID:   req.TokenID,
		Prompt:    req.Prompt,
	}
	if out.Artifact != nil {
		hash := out.Artifact.ContentAddress
		url := out.Artifact.GatewayURL
		resp.IPFSHash = &hash
		resp.IPFSURL = &url
	}
	return resp
}

// errorStatus maps a generation error to its HTTP status and message.
func errorStatus(err error) (int, string) {
	var upstream *provider.UpstreamError
	switch {
	case errors.Is(err, provider.ErrNotConfigured):
		return http.StatusInternalServerError, msgNotConfigured
	case errors.Is(err, provider.ErrTimeout):
		return http.StatusGatewayTimeout, msgTimeout
	case errors.As(err, &upstream):
		return http.StatusInternalServerError, upstream.Error()
	default:
		return http.StatusInternalServerError, err.Error()
	}
}
