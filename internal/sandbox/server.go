// Package sandbox emulates the Wordstat methods of the JSON API so the
// client can be exercised locally without a real token.
package sandbox

import (
	"bytes"
	"encoding/json"
	"errors"
	"net"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"wordstat-go/pkg/logger"
	"wordstat-go/pkg/wordstat"
)

// Path is where the sandbox serves the API
const Path = "/v4/json/"

// Service error codes returned by the sandbox
const (
	codeInvalidReportID   = 22
	codeReportNotFound    = 24
	codeReportQueueFull   = 31
	codeAuthorization     = 53
	codeInvalidParameters = 71
	codeReportNotReady    = 92
	codeInvalidRequest    = 501
)

var errorMessages = map[int]string{
	codeInvalidReportID:   "Invalid report ID",
	codeReportNotFound:    "Report does not exist",
	codeReportQueueFull:   "Report queue is full",
	codeAuthorization:     "Authorization error",
	codeInvalidParameters: "Invalid request parameters",
	codeReportNotReady:    "Report is not ready yet",
	codeInvalidRequest:    "Invalid request",
}

type Config struct {
	// Tokens accepted by the sandbox; empty accepts any non-empty token
	Tokens []string
	// ReadyAfter is how long a new report stays Pending
	ReadyAfter time.Duration
	// MaxReports caps stored reports per token
	MaxReports int
	// Now overrides the clock in tests
	Now func() time.Time
}

type Server struct {
	app    *fiber.App
	store  *reportStore
	tokens map[string]struct{}
	log    *logger.Logger
}

type requestEnvelope struct {
	Method string          `json:"method"`
	Token  string          `json:"token"`
	Param  json.RawMessage `json:"param"`
}

type createParam struct {
	Phrases []string `json:"Phrases"`
	GeoID   []int64  `json:"GeoID"`
}

// serviceError is answered with HTTP 200 and an error_code body
type serviceError struct {
	code   int
	detail string
}

func (e *serviceError) Error() string {
	return errorMessages[e.code]
}

func New(config Config) *Server {
	if config.MaxReports <= 0 {
		config.MaxReports = 5
	}
	if config.Now == nil {
		config.Now = time.Now
	}

	s := &Server{
		store:  newReportStore(config.MaxReports, config.ReadyAfter, config.Now),
		tokens: make(map[string]struct{}, len(config.Tokens)),
		log:    logger.GetLogger().WithField("component", "sandbox"),
	}
	for _, t := range config.Tokens {
		s.tokens[t] = struct{}{}
	}

	s.app = fiber.New(fiber.Config{
		AppName:               "wordstat-sandbox",
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler,
	})
	s.app.Use(recover.New())
	s.app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	s.app.Post(Path, s.handle)

	return s
}

// App exposes the fiber app, mainly for app.Test in unit tests
func (s *Server) App() *fiber.App {
	return s.app
}

// Listen serves on addr until Shutdown
func (s *Server) Listen(addr string) error {
	s.log.WithField("addr", addr).Info("Sandbox listening")
	return s.app.Listen(addr)
}

// Listener serves on an existing listener until Shutdown
func (s *Server) Listener(ln net.Listener) error {
	s.log.WithField("addr", ln.Addr().String()).Info("Sandbox listening")
	return s.app.Listener(ln)
}

func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
	}
	return c.Status(code).JSON(fiber.Map{"error": err.Error()})
}

func (s *Server) handle(c *fiber.Ctx) error {
	var req requestEnvelope
	if err := json.Unmarshal(c.Body(), &req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "request body is not a JSON envelope")
	}

	log := s.log.WithFields(map[string]interface{}{
		"method":     req.Method,
		"token":      logger.MaskToken(req.Token),
		"request_id": c.Locals("requestid"),
	})

	data, err := s.dispatch(req)
	if err != nil {
		var se *serviceError
		if !errors.As(err, &se) {
			return err
		}
		log.WithField("error_code", se.code).Debug("Sandbox call rejected")
		return c.JSON(fiber.Map{
			"error_code":   se.code,
			"error_str":    errorMessages[se.code],
			"error_detail": se.detail,
		})
	}

	log.Debug("Sandbox call served")
	return c.JSON(fiber.Map{"data": data})
}

func (s *Server) dispatch(req requestEnvelope) (any, error) {
	if !s.authorized(req.Token) {
		return nil, &serviceError{code: codeAuthorization}
	}

	switch req.Method {
	case wordstat.MethodGetRegions:
		return regionTree, nil
	case wordstat.MethodGetReportList:
		return s.reportList(req.Token), nil
	case wordstat.MethodCreateReport:
		return s.createReport(req)
	case wordstat.MethodGetReport:
		return s.getReport(req)
	case wordstat.MethodDeleteReport:
		return s.deleteReport(req)
	default:
		return nil, &serviceError{code: codeInvalidRequest, detail: "unknown method " + req.Method}
	}
}

func (s *Server) authorized(token string) bool {
	if token == "" {
		return false
	}
	if len(s.tokens) == 0 {
		return true
	}
	_, ok := s.tokens[token]
	return ok
}

func (s *Server) reportList(token string) []fiber.Map {
	states := s.store.list(token)
	out := make([]fiber.Map, 0, len(states))
	for _, st := range states {
		status := "Pending"
		if st.ready {
			status = "Done"
		}
		out = append(out, fiber.Map{"ReportID": st.id, "StatusReport": status})
	}
	return out
}

func (s *Server) createReport(req requestEnvelope) (any, error) {
	var param createParam
	dec := json.NewDecoder(bytes.NewReader(req.Param))
	dec.DisallowUnknownFields()
	if len(req.Param) == 0 || dec.Decode(&param) != nil {
		return nil, &serviceError{code: codeInvalidParameters, detail: "param must be {Phrases, GeoID}"}
	}

	if len(param.Phrases) == 0 || len(param.Phrases) > wordstat.MaxPhrases {
		return nil, &serviceError{code: codeInvalidParameters, detail: "Phrases must hold 1 to 10 phrases"}
	}
	for _, phrase := range param.Phrases {
		if err := wordstat.ValidatePhrase(phrase); err != nil {
			return nil, &serviceError{code: codeInvalidParameters, detail: err.Error()}
		}
	}
	for _, id := range param.GeoID {
		if _, ok := knownRegions[id]; !ok {
			return nil, &serviceError{code: codeInvalidParameters, detail: "unknown GeoID"}
		}
	}

	id, err := s.store.create(req.Token, param.Phrases, param.GeoID)
	if errors.Is(err, errQueueFull) {
		return nil, &serviceError{code: codeReportQueueFull}
	}
	return id, err
}

func (s *Server) getReport(req requestEnvelope) (any, error) {
	id, err := reportID(req.Param)
	if err != nil {
		return nil, err
	}

	r, ready, err := s.store.get(req.Token, id)
	if err != nil {
		return nil, &serviceError{code: codeReportNotFound}
	}
	if !ready {
		return nil, &serviceError{code: codeReportNotReady}
	}

	entries := make([]entryRecord, 0, len(r.phrases))
	for _, phrase := range r.phrases {
		entries = append(entries, buildEntry(phrase, r.geoIDs))
	}
	return entries, nil
}

func (s *Server) deleteReport(req requestEnvelope) (any, error) {
	id, err := reportID(req.Param)
	if err != nil {
		return nil, err
	}
	if err := s.store.delete(req.Token, id); err != nil {
		return nil, &serviceError{code: codeReportNotFound}
	}
	return 1, nil
}

// reportID reads a positive integer report id from param
func reportID(param json.RawMessage) (int64, error) {
	dec := json.NewDecoder(bytes.NewReader(param))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return 0, &serviceError{code: codeInvalidReportID}
	}
	n, ok := v.(json.Number)
	if !ok {
		return 0, &serviceError{code: codeInvalidReportID}
	}
	id, err := n.Int64()
	if err != nil || id <= 0 {
		return 0, &serviceError{code: codeInvalidReportID}
	}
	return id, nil
}
