package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"sync"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"

	"github.com/mosaicdev/mosaic-registry/interfaces"
	"github.com/mosaicdev/mosaic-registry/metrics"
	"github.com/mosaicdev/mosaic-registry/registry"
	"github.com/mosaicdev/mosaic-registry/transact"
)

// maxBodySize is the maximum allowed request body size (1MB).
const maxBodySize = 1024 * 1024

// classReverted marks an ErrorResponse produced by a reverted contract call.
const classReverted = "reverted"

// RequestError provides structured error information for HTTP responses.
// It includes both an HTTP status code and the underlying error.
type RequestError struct {
	// StatusCode is the HTTP status code to return.
	StatusCode int

	// Err is the underlying error.
	Err error
}

// Error returns the error message from the underlying error.
func (e *RequestError) Error() string {
	return e.Err.Error()
}

func (e *RequestError) Unwrap() error {
	return e.Err
}

func badRequest(format string, args ...interface{}) *RequestError {
	return &RequestError{StatusCode: http.StatusBadRequest, Err: fmt.Errorf(format, args...)}
}

// readOnlyReporter is implemented by registry clients that can run without a signer.
type readOnlyReporter interface {
	ReadOnly() bool
}

// Handler serves the registry gateway API on top of a registry client.
// Writes are serialised so a single signer never races its own nonce.
type Handler struct {
	registry interfaces.MosaicRegistry
	history  interfaces.DeploymentHistory
	log      *slog.Logger

	writeMu sync.Mutex
}

// NewHandler creates a gateway handler. History endpoints are served when
// the registry also implements interfaces.DeploymentHistory.
func NewHandler(reg interfaces.MosaicRegistry, log *slog.Logger) *Handler {
	h := &Handler{
		registry: reg,
		log:      log,
	}
	if history, ok := reg.(interfaces.DeploymentHistory); ok {
		h.history = history
	}
	return h
}

// ReadOnly reports whether POST /api/v1/deployments is refused.
func (h *Handler) ReadOnly() bool {
	if r, ok := h.registry.(readOnlyReporter); ok {
		return r.ReadOnly()
	}
	return false
}

// HandleTotal serves GET /api/v1/deployments/total.
func (h *Handler) HandleTotal(w http.ResponseWriter, r *http.Request) {
	total, err := h.registry.GetTotalDeployments(r.Context())
	if err != nil {
		h.writeRegistryError(w, "totalDeployments", err, false)
		return
	}
	if total.IsInt64() {
		metrics.TotalDeployments.Set(float64(total.Int64()))
	}
	h.writeJSON(w, http.StatusOK, TotalResponse{Total: total.String()})
}

// HandleGetDeployment serves GET /api/v1/deployments/{id}. Unknown ids revert
// on-chain and are reported as 404.
func (h *Handler) HandleGetDeployment(w http.ResponseWriter, r *http.Request) {
	id, err := interfaces.ParseDeploymentID(chi.URLParam(r, "id"))
	if err != nil {
		h.writeError(w, badRequest("%w", err))
		return
	}

	entry, err := h.registry.GetContractData(r.Context(), id)
	if err != nil {
		h.writeRegistryError(w, "getContractData", err, false)
		return
	}
	h.writeJSON(w, http.StatusOK, NewEntryResponse(entry))
}

// HandleDeployerDeployments serves GET /api/v1/deployers/{address}/deployments.
func (h *Handler) HandleDeployerDeployments(w http.ResponseWriter, r *http.Request) {
	deployer, err := interfaces.ParseAddress(chi.URLParam(r, "address"))
	if err != nil {
		h.writeError(w, badRequest("%w", err))
		return
	}

	ids, err := h.registry.GetDeployerContracts(r.Context(), deployer)
	if err != nil {
		h.writeRegistryError(w, "getDeployerContracts", err, false)
		return
	}

	resp := DeployerResponse{
		Deployer:      deployer.Hex(),
		DeploymentIDs: make([]string, 0, len(ids)),
	}
	for _, id := range ids {
		resp.DeploymentIDs = append(resp.DeploymentIDs, idString(id))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleEvents serves GET /api/v1/deployments/events?fromBlock=N&deployer=0x..
// The deployer parameter may be repeated.
func (h *Handler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	if h.history == nil {
		h.writeError(w, &RequestError{StatusCode: http.StatusNotImplemented, Err: errors.New("deployment history not available")})
		return
	}

	query := r.URL.Query()
	var fromBlock uint64
	if raw := query.Get("fromBlock"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			h.writeError(w, badRequest("invalid fromBlock %q", raw))
			return
		}
		fromBlock = parsed
	}

	var deployers []common.Address
	for _, raw := range query["deployer"] {
		deployer, err := interfaces.ParseAddress(raw)
		if err != nil {
			h.writeError(w, badRequest("%w", err))
			return
		}
		deployers = append(deployers, deployer)
	}

	events, err := h.history.DeploymentEvents(r.Context(), fromBlock, deployers...)
	if err != nil {
		h.writeRegistryError(w, "deploymentEvents", err, false)
		return
	}

	resp := make([]EventResponse, 0, len(events))
	for _, event := range events {
		resp = append(resp, NewEventResponse(event))
	}
	h.writeJSON(w, http.StatusOK, resp)
}

// HandleRecordDeployment serves POST /api/v1/deployments.
//
// Request body: RecordRequest as JSON. The source code is hashed by the
// registry client, only its digest goes on-chain.
//
// Response: 201 with RecordResponse once the ContractDeployed event of the
// confirmed transaction has been observed.
func (h *Handler) HandleRecordDeployment(w http.ResponseWriter, r *http.Request) {
	if h.ReadOnly() {
		h.writeError(w, &RequestError{StatusCode: http.StatusForbidden, Err: errors.New("gateway is read-only: no signing key configured")})
		return
	}

	var req RecordRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			h.writeError(w, &RequestError{StatusCode: http.StatusRequestEntityTooLarge, Err: errors.New("request body too large")})
			return
		}
		h.writeError(w, badRequest("invalid request body: %w", err))
		return
	}

	contractAddress, err := interfaces.ParseAddress(req.ContractAddress)
	if err != nil {
		h.writeError(w, badRequest("%w", err))
		return
	}

	h.writeMu.Lock()
	id, err := h.registry.RecordDeployment(r.Context(), contractAddress, req.ContractType, req.SourceCode)
	h.writeMu.Unlock()
	if err != nil {
		h.writeRegistryError(w, "recordDeployment", err, true)
		return
	}

	metrics.DeploymentsRecorded.Inc()
	h.log.Info("Recorded deployment",
		"deploymentId", id.String(),
		"contractAddress", contractAddress.Hex(),
		"contractType", req.ContractType)

	h.writeJSON(w, http.StatusCreated, RecordResponse{
		DeploymentID:   id.String(),
		SourceCodeHash: registry.SourceCodeHash(req.SourceCode).Hex(),
	})
}

// StatusFor maps registry errors onto HTTP status codes. Reverts are 404 for
// reads (unknown id) and 422 for writes.
func StatusFor(err error, write bool) int {
	var reqErr *RequestError
	switch {
	case errors.As(err, &reqErr):
		return reqErr.StatusCode
	case errors.Is(err, transact.ErrNoTransactOpts):
		return http.StatusForbidden
	case errors.Is(err, transact.ErrSignerRejected):
		return http.StatusUnauthorized
	case errors.Is(err, transact.ErrExecutionReverted):
		if write {
			return http.StatusUnprocessableEntity
		}
		return http.StatusNotFound
	case errors.Is(err, transact.ErrInsufficientFunds):
		return http.StatusPaymentRequired
	case errors.Is(err, transact.ErrConfirmationTimeout), errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, transact.ErrConnectivity), errors.Is(err, transact.ErrEventNotFound):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func errorClass(err error) string {
	switch {
	case errors.Is(err, transact.ErrNoTransactOpts):
		return "read_only"
	case errors.Is(err, transact.ErrExecutionReverted):
		return classReverted
	case errors.Is(err, transact.ErrInsufficientFunds):
		return "funding"
	case errors.Is(err, transact.ErrConfirmationTimeout):
		return "timeout"
	case errors.Is(err, transact.ErrConnectivity):
		return "connectivity"
	case errors.Is(err, transact.ErrEventNotFound):
		return "event_missing"
	case errors.Is(err, transact.ErrSignerRejected):
		return "signer"
	default:
		return "other"
	}
}

func (h *Handler) writeRegistryError(w http.ResponseWriter, operation string, err error, write bool) {
	status := StatusFor(err, write)
	metrics.RegistryErrors.WithLabelValues(operation, errorClass(err)).Inc()

	if status >= http.StatusInternalServerError {
		h.log.Error("Registry call failed", "operation", operation, "err", err)
	} else {
		h.log.Debug("Registry call rejected", "operation", operation, "err", err)
	}
	h.writeJSON(w, status, ErrorResponse{Error: err.Error(), Class: errorClass(err)})
}

func (h *Handler) writeError(w http.ResponseWriter, err *RequestError) {
	h.writeJSON(w, err.StatusCode, ErrorResponse{Error: err.Error()})
}

func (h *Handler) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		h.log.Error("Failed to encode response", "err", err)
	}
}
