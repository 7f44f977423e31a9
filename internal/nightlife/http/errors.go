package http

import (
	"net/http"

	"github.com/aussiebroadwan/nightlife/pkg/httpx"
	"github.com/aussiebroadwan/nightlife/pkg/nightlifesdk"
)

func writeFailure(w http.ResponseWriter, status int, msg string) {
	httpx.WriteJSON(w, status, nightlifesdk.ErrorResponse{Success: false, Error: msg})
}

// writeErrorCode writes the bare {"error": code} body the directory routes use.
func writeErrorCode(w http.ResponseWriter, status int, code string) {
	httpx.WriteJSON(w, status, map[string]string{"error": code})
}
