//go:build e2e

package serial_test

import (
	"net/http"
	"sync"
	"testing"

	"serial-inventory/internal/handler/dto/request"
	"serial-inventory/internal/pkg/config"
	"serial-inventory/tests/common/dbtest"
	"serial-inventory/tests/common/httptest"
	"serial-inventory/tests/e2e"
	"serial-inventory/tests/e2e/common/helper"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// SinglePolicySuite runs against an app configured to allow one serial per variant.
type SinglePolicySuite struct {
	e2e.SharedSuite
}

func (s *SinglePolicySuite) SetupSuite() {
	s.Configure = func(cfg *config.Config) {
		cfg.Serial.AssignmentPolicy = "single"
	}
	s.SharedSuite.SetupSuite()
}

func (s *SinglePolicySuite) SetupSubTest() {
	s.SharedSuite.SetupSubTest()
}

func TestSinglePolicySuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(SinglePolicySuite))
}

func (s *SinglePolicySuite) occupied(variantID string) int {
	var n int
	err := s.DB.QueryRow(s.T().Context(),
		`SELECT count(*) FROM serials WHERE shop = $1 AND variant_id = $2 AND status IN ('ASSIGNED', 'RESERVED', 'SOLD')`,
		shopA, variantID).Scan(&n)
	s.Require().NoError(err)
	return n
}

func (s *SinglePolicySuite) TestConcurrentAttach() {
	s.Run("Normal case: racing assigns of different serials leave the variant with one", func() {
		t := s.T()
		ids := []uuid.UUID{
			dbtest.CreateTestSerial(t, s.DB, shopA, "ONE-A", "AVAILABLE", nil, nil, nil),
			dbtest.CreateTestSerial(t, s.DB, shopA, "ONE-B", "AVAILABLE", nil, nil, nil),
			dbtest.CreateTestSerial(t, s.DB, shopA, "ONE-C", "AVAILABLE", nil, nil, nil),
		}
		token := helper.SessionToken(t, s.Config.JWT, shopA)

		codes := make([]int, len(ids))
		var wg sync.WaitGroup
		for i, id := range ids {
			wg.Add(1)
			go func(i int, id uuid.UUID) {
				defer wg.Done()
				req := request.AssignSerialsRequest{SerialIDs: []uuid.UUID{id}, ProductID: "p-1", VariantID: "v-1"}
				codes[i] = httptest.PerformRequest(t, s.Router, http.MethodPost, assignURL, req, token).Code
			}(i, id)
		}
		wg.Wait()

		s.ElementsMatch([]int{http.StatusOK, http.StatusBadRequest, http.StatusBadRequest}, codes)
		s.Equal(1, s.occupied("v-1"))
	})

	s.Run("Error case: point of sale cannot attach a second serial", func() {
		t := s.T()
		dbtest.CreateTestSerial(t, s.DB, shopA, "ONE-HELD", "ASSIGNED", strp("p-1"), strp("v-1"), nil)
		dbtest.CreateTestSerial(t, s.DB, shopA, "ONE-POS", "AVAILABLE", nil, nil, nil)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, reserveSerialURL,
			request.ReserveBySerialRequest{SerialNumber: "ONE-POS", ProductID: "p-1", VariantID: "v-1"},
			helper.SessionToken(t, s.Config.JWT, shopA))
		httptest.AssertErrorResponse(t, w, http.StatusBadRequest, "variant already holds a serial")
		s.Equal(1, s.occupied("v-1"))
	})
}
