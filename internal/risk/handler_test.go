package risk

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Elon7069/asha-didi-backend/pkg/logging"
)

type stubAssessor struct {
	calls        int
	lastSymptoms []string
	lastPregnant bool
	lastWeek     int
	result       Assessment
}

func (s *stubAssessor) Analyze(_ context.Context, symptoms []string, isPregnant bool, pregnancyWeek int) Assessment {
	s.calls++
	s.lastSymptoms = symptoms
	s.lastPregnant = isPregnant
	s.lastWeek = pregnancyWeek
	return s.result
}

func postAssess(t *testing.T, h *Handler, body AssessRequest) *httptest.ResponseRecorder {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Assess(rec, req)
	return rec
}

func TestAssessHandler(t *testing.T) {
	assessor := &stubAssessor{result: Assessment{
		IsRedFlag:      true,
		RiskScore:      88,
		Recommendation: "Go to the health centre now.",
		Reasons:        []string{"heavy bleeding"},
	}}
	h := NewHandler(assessor, logging.Default())

	rec := postAssess(t, h, AssessRequest{
		Symptoms:      []string{"heavy bleeding"},
		IsPregnant:    true,
		PregnancyWeek: 30,
	})

	require.Equal(t, http.StatusOK, rec.Code)
	var out Assessment
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.True(t, out.IsRedFlag)
	assert.Equal(t, 88.0, out.RiskScore)
	assert.Equal(t, 1, assessor.calls)
	assert.Equal(t, []string{"heavy bleeding"}, assessor.lastSymptoms)
	assert.True(t, assessor.lastPregnant)
	assert.Equal(t, 30, assessor.lastWeek)
}

func TestAssessHandlerRequiresSymptoms(t *testing.T) {
	h := NewHandler(&stubAssessor{}, logging.Default())

	rec := postAssess(t, h, AssessRequest{IsPregnant: true})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestAssessHandlerRejectsBadJSON(t *testing.T) {
	h := NewHandler(&stubAssessor{}, logging.Default())

	req := httptest.NewRequest(http.MethodPost, "/risk/assess", bytes.NewReader([]byte("{")))
	rec := httptest.NewRecorder()
	h.Assess(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
