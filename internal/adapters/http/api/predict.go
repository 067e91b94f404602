package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"

	"github.com/okian/mindscan/internal/domain/behavior"
	"github.com/okian/mindscan/internal/domain/model"
	"github.com/okian/mindscan/pkg/logger"
)

// Form field names accepted by POST /predict.
const (
	fieldStudentID = "student_id"
	fieldText      = "text"
	fieldBehavior  = "study_behavior"
	fieldImage     = "image"

	defaultStudentID = "N/A"
	multipartMemory  = 8 << 20

	// AssessmentIDHeader carries the id of the stored assessment.
	AssessmentIDHeader = "X-Assessment-ID"

	msgInvalidBehavior = "Invalid study behavior data"
)

// Assessor runs one assessment.
type Assessor interface {
	Assess(ctx context.Context, req model.Request) (model.Assessment, error)
}

// PredictHandler handles assessment submissions.
type PredictHandler struct {
	assessor Assessor
	maxBytes int64
	logger   logger.Logger
}

// NewPredictHandler creates a predict handler.
func NewPredictHandler(a Assessor, maxBytes int64, l logger.Logger) *PredictHandler {
	return &PredictHandler{assessor: a, maxBytes: maxBytes, logger: l}
}

// predictResponse is the Result plus the raw text score, which clients read
// from the text_sentiment field.
type predictResponse struct {
	model.Result
	TextSentiment float64 `json:"text_sentiment"`
}

// HandlePredict handles POST /predict with a multipart or urlencoded form.
func (h *PredictHandler) HandlePredict(w http.ResponseWriter, r *http.Request) {
	const op = "api.predict"
	if r.Method != http.MethodPost {
		methodNotAllowed(w, http.MethodPost, http.MethodOptions)
		return
	}
	ctx := r.Context()

	req, err := h.parse(w, r)
	if err != nil {
		err = Wrap(op, err)
		h.logger.Warn(ctx, "rejected predict request", logger.Error(err))
		var mbe *http.MaxBytesError
		switch {
		case errors.As(err, &mbe):
			writeError(w, http.StatusRequestEntityTooLarge, codePayloadTooLarge,
				fmt.Sprintf("request body exceeds %d bytes", mbe.Limit))
		case errors.Is(err, errBehavior):
			writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidBehavior)
		default:
			writeError(w, http.StatusBadRequest, codeBadRequest, err.Error())
		}
		return
	}

	a, err := h.assessor.Assess(ctx, req)
	if err != nil {
		if errors.Is(err, behavior.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, codeBadRequest, msgInvalidBehavior)
			return
		}
		err = WrapKind(op, ErrInternal, err)
		h.logger.Error(ctx, "prediction failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, codeInternal, err.Error())
		return
	}

	w.Header().Set(AssessmentIDHeader, a.ID)
	writeJSON(w, http.StatusOK, predictResponse{
		Result:        a.Result,
		TextSentiment: a.Channels.Text.Value,
	})
}

var errBehavior = errors.New(msgInvalidBehavior)

func (h *PredictHandler) parse(w http.ResponseWriter, r *http.Request) (model.Request, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	var err error
	if mediaType == "multipart/form-data" {
		err = r.ParseMultipartForm(multipartMemory)
	} else {
		err = r.ParseForm()
	}
	if err != nil {
		return model.Request{}, fmt.Errorf("%w: parse form: %w", ErrBadRequest, err)
	}

	req := model.Request{
		StudentID: r.PostFormValue(fieldStudentID),
		Text:      r.PostFormValue(fieldText),
	}
	if req.StudentID == "" {
		req.StudentID = defaultStudentID
	}

	req.Behavior, err = parseBehavior(r.PostFormValue(fieldBehavior))
	if err != nil {
		return model.Request{}, err
	}

	req.Image, err = readImage(r)
	if err != nil {
		return model.Request{}, fmt.Errorf("%w: image: %w", ErrBadRequest, err)
	}
	return req, nil
}

// parseBehavior decodes the JSON study_behavior array. A missing field is
// treated as an empty array.
func parseBehavior(raw string) (model.BehaviorInput, error) {
	if raw == "" {
		raw = "[]"
	}
	var values []float64
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return model.BehaviorInput{}, fmt.Errorf("%w: %w: %w", ErrBadRequest, errBehavior, err)
	}
	in, err := behavior.ParseInput(values)
	if err != nil {
		return model.BehaviorInput{}, fmt.Errorf("%w: %w: %w", ErrBadRequest, errBehavior, err)
	}
	return in, nil
}

// readImage returns the uploaded image bytes, or nil when none was sent.
func readImage(r *http.Request) ([]byte, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	f, hdr, err := r.FormFile(fieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	if hdr.Filename == "" {
		return nil, nil
	}
	return io.ReadAll(f)
}
