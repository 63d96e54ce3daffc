package server

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"traingame/internal/output"
	"traingame/internal/solver"
)

// HandleHealth handles GET /healthz.
func (s *Server) HandleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "arithmetic": s.solver.Mode()})
}

// HandleSolve handles POST /v1/solve.
func (s *Server) HandleSolve(c *gin.Context) {
	requestID := getOrCreateRequestID(c)
	logger := s.logger.With(zap.String("request_id", requestID), zap.String("handler", "HandleSolve"))

	if limit := s.cfg.Server.MaxRequestBody; limit > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	}

	var req SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			c.JSON(http.StatusRequestEntityTooLarge, ErrorResponse{Error: "request body too large", Code: "TOO_LARGE"})
			return
		}
		if errors.Is(err, io.EOF) {
			err = errors.New("empty request body")
		}
		logger.Warn("invalid request body", zap.Error(err))
		s.metrics.searches.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid request body", Code: "INVALID_REQUEST"})
		return
	}
	if err := req.Validate(); err != nil {
		logger.Warn("invalid operands", zap.Error(err))
		s.metrics.searches.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: "operands must be exactly four integers", Code: "INVALID_OPERAND"})
		return
	}

	var ops solver.Operands
	copy(ops[:], req.Operands)
	s.respond(c, requestID, ops)
}

// HandleSolveDigits handles GET /v1/solve/:digits.
func (s *Server) HandleSolveDigits(c *gin.Context) {
	requestID := getOrCreateRequestID(c)

	ops, err := solver.ParseOperands([]string{c.Param("digits")})
	if err != nil {
		s.metrics.searches.WithLabelValues("invalid").Inc()
		c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error(), Code: "INVALID_OPERAND"})
		return
	}
	s.respond(c, requestID, ops)
}

func (s *Server) respond(c *gin.Context, requestID string, ops solver.Operands) {
	rep := s.solver.Solve(ops)

	outcome := "solved"
	if len(rep.Solutions) == 0 {
		outcome = "no_solution"
	}
	s.metrics.searches.WithLabelValues(outcome).Inc()
	s.metrics.solutions.Observe(float64(len(rep.Solutions)))
	s.metrics.pruned.Observe(float64(rep.Pruned))
	s.metrics.duration.Observe(rep.Elapsed.Seconds())

	resp := SolveResponse{
		RequestID: requestID,
		Operands:  ops,
		Solutions: rep.Expressions(),
		Count:     len(rep.Solutions),
	}
	if resp.Count == 0 {
		resp.Message = output.NoSolutions
	}
	c.JSON(http.StatusOK, resp)
}

func getOrCreateRequestID(c *gin.Context) string {
	requestID := c.GetHeader("X-Request-ID")
	if requestID == "" {
		requestID = uuid.NewString()
	}
	c.Header("X-Request-ID", requestID)
	return requestID
}
