package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/segmentio/ksuid"

	"github.com/ssargent/brisinga/pkg/bigvec"
	"github.com/ssargent/brisinga/pkg/codec"
	"github.com/ssargent/brisinga/pkg/fee"
	"github.com/ssargent/brisinga/pkg/storage"
)

// u64CodecName tags buffers the API can interpret. Vectors provisioned
// with other codecs are visible in listings but not operable here.
const u64CodecName = "u64"

// Server holds the API server state.
type Server struct {
	buffers Buffers
	config  ServerConfig
	metrics *Metrics
}

// NewServer creates a new API server.
func NewServer(buffers Buffers, config ServerConfig, metrics *Metrics) *Server {
	return &Server{
		buffers: buffers,
		config:  config,
		metrics: metrics,
	}
}

// handleHealth godoc
//
//	@Summary		Health check
//	@Description	Get the health status of the API
//	@Tags			health
//	@Produce		json
//	@Success		200	{object}	map[string]string
//	@Router			/health [get]
//	@Security		ApiKeyAuth
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if s.metrics != nil {
		s.metrics.RecordHealthCheck(true)
	}
	sendSuccess(w, map[string]string{"status": "healthy"})
}

// handleCreateVector godoc
//
//	@Summary		Create a vector
//	@Description	Provision a zeroed buffer sized for the requested number of records
//	@Tags			vectors
//	@Accept			json
//	@Produce		json
//	@Param			body	body		CreateVectorRequest	true	"Capacity in records"
//	@Success		200		{object}	VectorResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/vectors [post]
func (s *Server) handleCreateVector(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req CreateVectorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Capacity <= 0 {
		sendError(w, "Capacity must be positive", http.StatusBadRequest)
		return
	}

	id, err := s.buffers.Create(4+codec.U64Width*req.Capacity, storage.BufferMeta{
		Codec: u64CodecName,
		Width: codec.U64Width,
	})
	if err != nil {
		s.recordOp("create", false, start)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	s.recordOp("create", true, start)
	s.refreshBufferGauge()
	sendSuccess(w, VectorResponse{
		ID:       id.String(),
		Capacity: req.Capacity,
		Width:    codec.U64Width,
	})
}

// handleListVectors godoc
//
//	@Summary		List vectors
//	@Tags			vectors
//	@Produce		json
//	@Success		200	{array}	storage.BufferInfo
//	@Security		ApiKeyAuth
//	@Router			/vectors [get]
func (s *Server) handleListVectors(w http.ResponseWriter, r *http.Request) {
	infos, err := s.buffers.List()
	if err != nil {
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	sendSuccess(w, infos)
}

// handleGetVector godoc
//
//	@Summary		Inspect a vector
//	@Description	Return length, capacity and a page of elements
//	@Tags			vectors
//	@Produce		json
//	@Param			id		path		string	true	"Vector ID"
//	@Param			skip	query		int		false	"Records to skip"
//	@Param			limit	query		int		false	"Maximum records returned"
//	@Success		200		{object}	VectorResponse
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id} [get]
func (s *Server) handleGetVector(w http.ResponseWriter, r *http.Request) {
	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}

	skip := queryInt(r, "skip", 0)
	limit := queryInt(r, "limit", 1000)

	buf, meta, err := s.buffers.Read(id)
	if err != nil {
		s.sendStorageError(w, err)
		return
	}
	v, err := s.openVector(w, buf, meta)
	if err != nil {
		return
	}

	resp := VectorResponse{
		ID:       id.String(),
		Length:   int(v.Len()),
		Capacity: v.Cap(),
		Width:    v.Width(),
	}

	it := v.Iter()
	for i := 0; it.Next(); i++ {
		if i < skip {
			continue
		}
		if len(resp.Elements) >= limit {
			break
		}
		resp.Elements = append(resp.Elements, it.Value())
	}
	if it.Err() != nil {
		sendError(w, it.Err().Error(), http.StatusInternalServerError)
		return
	}

	sendSuccess(w, resp)
}

// handleDeleteVector godoc
//
//	@Summary		Delete a vector
//	@Tags			vectors
//	@Produce		json
//	@Param			id	path		string	true	"Vector ID"
//	@Success		200	{object}	map[string]string
//	@Failure		404	{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id} [delete]
func (s *Server) handleDeleteVector(w http.ResponseWriter, r *http.Request) {
	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}
	if err := s.buffers.Delete(id); err != nil {
		s.sendStorageError(w, err)
		return
	}
	s.refreshBufferGauge()
	sendSuccess(w, map[string]string{"deleted": id.String()})
}

// handleInsertElement godoc
//
//	@Summary		Insert an element
//	@Description	Place the value at its sorted position
//	@Tags			vectors
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string					true	"Vector ID"
//	@Param			body	body		InsertElementRequest	true	"Value"
//	@Success		200		{object}	map[string]uint64
//	@Failure		409		{object}	APIResponse	"Duplicate key"
//	@Failure		413		{object}	APIResponse	"Capacity exceeded"
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id}/elements [post]
func (s *Server) handleInsertElement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}
	var req InsertElementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	err := s.buffers.Update(id, func(buf []byte, meta storage.BufferMeta) error {
		v, err := s.openVector(nil, buf, meta)
		if err != nil {
			return err
		}
		return v.InsertInOrder(req.Value)
	})
	if err != nil {
		s.recordOp("insert", false, start)
		s.sendVectorError(w, err)
		return
	}

	s.recordOp("insert", true, start)
	sendSuccess(w, map[string]uint64{"inserted": req.Value})
}

// handleFindElement godoc
//
//	@Summary		Find an element
//	@Tags			vectors
//	@Produce		json
//	@Param			id		path		string	true	"Vector ID"
//	@Param			value	path		int		true	"Value to look up"
//	@Success		200		{object}	map[string]interface{}
//	@Failure		404		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id}/elements/{value} [get]
func (s *Server) handleFindElement(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}
	value, err := strconv.ParseUint(chi.URLParam(r, "value"), 10, 64)
	if err != nil {
		sendError(w, "Value must be an unsigned integer", http.StatusBadRequest)
		return
	}

	buf, meta, err := s.buffers.Read(id)
	if err != nil {
		s.sendStorageError(w, err)
		return
	}
	v, err := s.openVector(w, buf, meta)
	if err != nil {
		return
	}

	index, found, err := v.BinarySearch(value)
	if err != nil {
		s.recordOp("find", false, start)
		sendError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	s.recordOp("find", true, start)

	if !found {
		sendError(w, fmt.Sprintf("Value %d not present (insertion point %d)", value, index),
			http.StatusNotFound)
		return
	}
	sendSuccess(w, map[string]interface{}{"value": value, "index": index})
}

// handleRetain godoc
//
//	@Summary		Compact a vector
//	@Description	Keep only the elements inside [min, max]
//	@Tags			vectors
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string			true	"Vector ID"
//	@Param			body	body		RetainRequest	true	"Kept range"
//	@Success		200		{object}	map[string]int
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id}/retain [post]
func (s *Server) handleRetain(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}
	var req RetainRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Min > req.Max {
		sendError(w, "min must not exceed max", http.StatusBadRequest)
		return
	}

	u64 := codec.U64Codec{}
	var survivors int
	err := s.buffers.Update(id, func(buf []byte, meta storage.BufferMeta) error {
		v, err := s.openVector(nil, buf, meta)
		if err != nil {
			return err
		}
		if err := v.Retain(func(rec []byte) bool {
			val, err := u64.Decode(rec)
			if err != nil {
				return true
			}
			return val >= req.Min && val <= req.Max
		}); err != nil {
			return err
		}
		survivors = int(v.Len())
		return nil
	})
	if err != nil {
		s.recordOp("retain", false, start)
		s.sendVectorError(w, err)
		return
	}

	s.recordOp("retain", true, start)
	sendSuccess(w, map[string]int{"length": survivors})
}

// handleGrow godoc
//
//	@Summary		Grow a vector's buffer
//	@Description	Reprovision the buffer with room for the requested number of records
//	@Tags			vectors
//	@Accept			json
//	@Produce		json
//	@Param			id		path		string		true	"Vector ID"
//	@Param			body	body		GrowRequest	true	"New capacity in records"
//	@Success		200		{object}	map[string]int
//	@Security		ApiKeyAuth
//	@Router			/vectors/{id}/grow [post]
func (s *Server) handleGrow(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	id, ok := s.vectorID(w, r)
	if !ok {
		return
	}
	var req GrowRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	if req.Capacity <= 0 {
		sendError(w, "Capacity must be positive", http.StatusBadRequest)
		return
	}

	if err := s.buffers.Grow(id, 4+codec.U64Width*req.Capacity); err != nil {
		s.recordOp("grow", false, start)
		s.sendStorageError(w, err)
		return
	}

	s.recordOp("grow", true, start)
	sendSuccess(w, map[string]int{"capacity": req.Capacity})
}

// handleFeeApply godoc
//
//	@Summary		Apply a fee
//	@Description	Charge a validated fee ratio against an amount
//	@Tags			fees
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FeeApplyRequest	true	"Fee and amount"
//	@Success		200		{object}	FeeApplyResponse
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/fees/apply [post]
func (s *Server) handleFeeApply(w http.ResponseWriter, r *http.Request) {
	var req FeeApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	f, err := fee.New(req.Fee.Numerator, req.Fee.Denominator)
	if err != nil {
		sendError(w, err.Error(), http.StatusBadRequest)
		return
	}

	charged := f.Apply(req.Amount)
	sendSuccess(w, FeeApplyResponse{
		Charged:   charged,
		Remainder: req.Amount - charged,
	})
}

// handleFeeCompose godoc
//
//	@Summary		Compose two fees
//	@Description	Multiply two fee ratios, rescaling past the precision cap
//	@Tags			fees
//	@Accept			json
//	@Produce		json
//	@Param			body	body		FeeComposeRequest	true	"Fees to compose"
//	@Success		200		{object}	FeeRatio
//	@Failure		400		{object}	APIResponse
//	@Security		ApiKeyAuth
//	@Router			/fees/compose [post]
func (s *Server) handleFeeCompose(w http.ResponseWriter, r *http.Request) {
	var req FeeComposeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendError(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	first, err := fee.New(req.First.Numerator, req.First.Denominator)
	if err != nil {
		sendError(w, fmt.Sprintf("first fee: %v", err), http.StatusBadRequest)
		return
	}
	second, err := fee.New(req.Second.Numerator, req.Second.Denominator)
	if err != nil {
		sendError(w, fmt.Sprintf("second fee: %v", err), http.StatusBadRequest)
		return
	}

	composed := first.Mul(second)
	sendSuccess(w, FeeRatio{
		Numerator:   composed.Numerator(),
		Denominator: composed.Denominator(),
	})
}

// vectorID parses the {id} path parameter, replying 400 on garbage.
func (s *Server) vectorID(w http.ResponseWriter, r *http.Request) (ksuid.KSUID, bool) {
	id, err := ksuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		sendError(w, "Invalid vector ID", http.StatusBadRequest)
		return ksuid.Nil, false
	}
	return id, true
}

// openVector builds a sorted u64 view over buf. When w is non-nil a
// failure is also written as an HTTP response.
func (s *Server) openVector(w http.ResponseWriter, buf []byte, meta storage.BufferMeta) (*bigvec.OrderedVec[uint64], error) {
	if meta.Codec != u64CodecName {
		err := fmt.Errorf("buffer holds %q records, this API operates on %q", meta.Codec, u64CodecName)
		if w != nil {
			sendError(w, err.Error(), http.StatusBadRequest)
		}
		return nil, err
	}
	v, err := bigvec.NewOrdered(buf, codec.U64Codec{})
	if err != nil {
		if w != nil {
			sendError(w, err.Error(), http.StatusInternalServerError)
		}
		return nil, err
	}
	return v, nil
}

// sendVectorError maps vector errors onto HTTP statuses.
func (s *Server) sendVectorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, bigvec.ErrDuplicateKey):
		sendError(w, err.Error(), http.StatusConflict)
	case errors.Is(err, bigvec.ErrCapacityExceeded):
		sendError(w, err.Error(), http.StatusRequestEntityTooLarge)
	case errors.Is(err, bigvec.ErrIndexOutOfRange):
		sendError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, storage.ErrBufferNotFound):
		sendError(w, err.Error(), http.StatusNotFound)
	default:
		sendError(w, err.Error(), http.StatusInternalServerError)
	}
}

// sendStorageError maps storage errors onto HTTP statuses.
func (s *Server) sendStorageError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrBufferNotFound) {
		sendError(w, err.Error(), http.StatusNotFound)
		return
	}
	sendError(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) recordOp(operation string, success bool, start time.Time) {
	if s.metrics != nil {
		s.metrics.RecordVectorOperation(operation, success, time.Since(start))
	}
}

func (s *Server) refreshBufferGauge() {
	if s.metrics == nil {
		return
	}
	if infos, err := s.buffers.List(); err == nil {
		s.metrics.UpdateBufferStats(len(infos))
	}
}

func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
