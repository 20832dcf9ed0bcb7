package handler

import (
	"net/http"

	"github.com/garrettladley/terrahook/internal/version"
	"github.com/garrettladley/terrahook/internal/xhttp"
)

type healthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

func HandleHealth(w http.ResponseWriter, _ *http.Request) {
	xhttp.WriteOK(w, healthResponse{Status: statusOK, Version: version.Get()})
}
