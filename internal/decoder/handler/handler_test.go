package handler

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/suite"

	"vinkit/internal/decoder"
	"vinkit/internal/decoder/metrics"
	"vinkit/internal/wmi"
	"vinkit/internal/wmi/catalog"
	"vinkit/pkg/vin"
)

type HandlerSuite struct {
	suite.Suite
	router chi.Router
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cat := catalog.MustLoadEmbedded()
	describer, err := wmi.NewDescriber(cat)
	s.Require().NoError(err)

	svc := decoder.New(
		decoder.WithDescriber(describer),
		decoder.WithMetrics(metrics.New(prometheus.NewRegistry())),
		decoder.WithLogger(logger),
	)
	s.router = chi.NewRouter()
	New(svc, logger, cat.Match).Register(s.router)
}

func (s *HandlerSuite) do(method, target, body string, headers map[string]string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *HandlerSuite) TestDecode() {
	s.Run("valid VIN with names", func() {
		w := s.do(http.MethodGet, "/vins/1HGBH41JXMN109186", "", nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp DecodeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("valid_with_checksum", resp.Validity)
		s.True(resp.SyntacticallyValid)
		s.True(resp.ChecksumValid)
		s.Equal("1HG", resp.Segments.WMI)
		s.Equal("North America", resp.Region)
		s.Equal("United States", resp.Country)
		s.Equal("Honda", resp.Manufacturer)
		s.Nil(resp.Proposal)
	})

	s.Run("locale from query", func() {
		w := s.do(http.MethodGet, "/vins/WBA00000200000000?locale=de-AT", "", nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp DecodeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("de", resp.Locale)
		s.Equal("Europa", resp.Region)
		s.Equal("Deutschland", resp.Country)
		s.Equal("BMW", resp.Manufacturer)
	})

	s.Run("locale from Accept-Language", func() {
		w := s.do(http.MethodGet, "/vins/VF1AAAAAAAA000000", "", map[string]string{"Accept-Language": "fr-FR,fr;q=0.9"})
		s.Require().Equal(http.StatusOK, w.Code)

		var resp DecodeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("fr", resp.Locale)
		s.Equal("France", resp.Country)
		s.Equal("Renault", resp.Manufacturer)
	})

	s.Run("invalid VIN gets proposal", func() {
		w := s.do(http.MethodGet, "/vins/wba%20123", "", nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp DecodeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("wba 123", resp.VIN)
		s.Equal("invalid", resp.Validity)
		s.False(resp.SyntacticallyValid)
		s.Empty(resp.Manufacturer)
		s.Require().NotNil(resp.Proposal)
		s.True(resp.Proposal.HasValidChecksum())
	})

	s.Run("percent signs are kept verbatim", func() {
		tests := []struct {
			target string
			want   string
		}{
			{target: "/vins/ABC%2541", want: "ABC%41"},
			{target: "/vins/1HGBH41JXMN10918%25", want: "1HGBH41JXMN10918%"},
			{target: "/vins/A%2FB", want: "A/B"},
		}
		for _, tt := range tests {
			w := s.do(http.MethodGet, tt.target, "", nil)
			s.Require().Equal(http.StatusOK, w.Code, tt.target)

			var resp DecodeResponse
			s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
			s.Equal(tt.want, resp.VIN)
			s.Equal("invalid", resp.Validity)
			s.Require().NotNil(resp.Proposal)
			s.True(resp.Proposal.HasValidChecksum())
		}
	})

	s.Run("oversized input", func() {
		w := s.do(http.MethodGet, "/vins/"+strings.Repeat("A", maxInputLength+1), "", nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestPropose() {
	s.Run("corrects input", func() {
		w := s.do(http.MethodPost, "/vins/propose", `{"vin":"1hgbh41j0mn109186"}`, nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp ProposeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal(vin.New("1HGBH41JXMN109186"), resp.VIN)
		s.Equal("valid_with_checksum", resp.Validity)
		s.True(resp.Changed)
	})

	s.Run("empty input uses fallback", func() {
		w := s.do(http.MethodPost, "/vins/propose", `{"vin":""}`, nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp ProposeResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Equal("1VWAA7A31FC000001", resp.VIN.String())
	})

	s.Run("malformed body", func() {
		w := s.do(http.MethodPost, "/vins/propose", `{"vin":`, nil)
		s.Equal(http.StatusBadRequest, w.Code)
	})
}

func (s *HandlerSuite) TestValidate() {
	s.Run("classifies batch", func() {
		w := s.do(http.MethodPost, "/vins/validate", `{"vins":["1HGBH41JXMN109186","1HGBH41J0MN109186","INVALID"]}`, nil)
		s.Require().Equal(http.StatusOK, w.Code)

		var resp ValidateResponse
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&resp))
		s.Require().Len(resp.Results, 3)
		s.Equal("valid_with_checksum", resp.Results[0].Validity)
		s.Equal("valid", resp.Results[1].Validity)
		s.Equal("invalid", resp.Results[2].Validity)
	})

	s.Run("empty batch rejected", func() {
		w := s.do(http.MethodPost, "/vins/validate", `{"vins":[]}`, nil)
		s.Equal(http.StatusBadRequest, w.Code)

		var body map[string]string
		s.Require().NoError(json.NewDecoder(w.Body).Decode(&body))
		s.Equal("validation_error", body["error"])
		s.Equal("vins is required", body["error_description"])
	})
}

type failingService struct{ Service }

func (failingService) Decode(context.Context, string, string) (*decoder.Report, error) {
	return nil, errors.New("boom")
}

func (s *HandlerSuite) TestDecodeFailure() {
	r := chi.NewRouter()
	New(failingService{}, slog.New(slog.NewTextHandler(io.Discard, nil)), nil).Register(r)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/vins/WBA", nil))
	s.Equal(http.StatusInternalServerError, w.Code)
}
