//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"serial-inventory/internal/domain/serial"
	"serial-inventory/internal/handler/api"
	resdto "serial-inventory/internal/handler/dto/response"
	"serial-inventory/internal/handler/httperr"
	"serial-inventory/internal/pkg/errs"
	"serial-inventory/internal/usecase/commands"
	"serial-inventory/internal/usecase/queries"
	"serial-inventory/internal/usecase/shared"
	"serial-inventory/tests/common/builder"
	"serial-inventory/tests/common/httptest"
	"serial-inventory/tests/common/testutil"
	commandsmock "serial-inventory/tests/mock/commands"
	queriesmock "serial-inventory/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

const testShop = "test-shop.myshopify.com"

// shopAuth stands in for the session token middleware.
func shopAuth(c *gin.Context) {
	if c.GetHeader("Authorization") == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
		return
	}
	c.Set("shop", testShop)
	c.Next()
}

type SerialHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockSerialCommands
	mockQueries  *queriesmock.MockSerialQueries
	handler      *api.SerialHandler
}

func (s *SerialHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockSerialCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockSerialQueries(s.mockCtrl)
	s.handler = api.NewSerialHandler(s.mockCommands, s.mockQueries)

	s.router.GET("/api/serials", shopAuth, s.handler.List)
	s.router.POST("/api/serials", shopAuth, s.handler.Create)
	s.router.POST("/api/serials/bulk", shopAuth, s.handler.CreateBulk)
	s.router.POST("/api/serials/assign", shopAuth, s.handler.Assign)
	s.router.GET("/api/serials/validate", shopAuth, s.handler.Validate)
	s.router.PATCH("/api/serials/:id", shopAuth, s.handler.Rename)
	s.router.DELETE("/api/serials/:id", shopAuth, s.handler.Delete)
}

func (s *SerialHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSerialHandlerSuite(t *testing.T) {
	suite.Run(t, new(SerialHandlerTestSuite))
}

// ================================================================================
// TestList
// ================================================================================

func (s *SerialHandlerTestSuite) TestList() {
	s.Run("success: returns items and the next cursor", func() {
		sold := "SOLD"
		views := []*queries.SerialView{
			builder.NewSerialBuilder().Sold("P1", "V1", "1001").BuildView(),
			builder.NewSerialBuilder().Sold("P1", "V1", "1002").BuildView(),
		}
		s.mockQueries.EXPECT().
			ListByShop(gomock.Any(), testShop, queries.SerialFilters{Status: &sold}, nil, 2).
			Return(views, &queries.Cursor{After: "next-page"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/serials?status=SOLD&limit=2", nil, "bearer-token")

		var body resdto.SerialListResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Items, 2)
		s.Require().NotNil(body.NextCursor)
		s.Equal("next-page", *body.NextCursor)
		s.Equal("SOLD", body.Items[0].Status)
	})

	s.Run("error: bad cursor maps to 400", func() {
		s.mockQueries.EXPECT().ListByShop(gomock.Any(), testShop, queries.SerialFilters{}, &queries.Cursor{After: "junk"}, 0).
			Return(nil, nil, queries.ErrInvalidCursor).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/serials?cursor=junk", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "cursor")
	})

	s.Run("error: 401 Unauthorized without a session token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/serials", nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *SerialHandlerTestSuite) TestCreate() {
	url := "/api/serials"
	reqBody := map[string]any{"serial_number": "SN-1001", "product_id": "P1", "variant_id": "V1"}
	created := builder.NewSerialBuilder().WithNumber("SN-1001").Assigned("P1", "V1").BuildDomain()

	s.Run("success: returns 201 with Location", func() {
		s.mockCommands.EXPECT().Create(gomock.Any(), testShop, commands.CreateSerialInput{
			SerialNumber: "SN-1001", ProductID: strp("P1"), VariantID: strp("V1"),
		}).Return(created, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.SerialResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("SN-1001", body.SerialNumber)
		s.Equal("ASSIGNED", body.Status)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Location": "/api/serials/" + created.ID().String()})
	})

	s.Run("error: 400 when serial_number is missing", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("serial_number", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "malformed serial number",
				commandsError:  serial.ErrInvalidSerialNumber,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "serial number must be",
			},
			{
				name:           "duplicate serial number",
				commandsError:  commands.ErrDuplicateSerial,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "already exists",
			},
			{
				name:           "variant missing from catalog",
				commandsError:  commands.ErrVariantNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "variant not found",
			},
			{
				name:           "concurrent writer",
				commandsError:  errs.Mark(errs.New("serialization failure"), errs.ErrConflict),
				expectedStatus: http.StatusConflict,
				expectedMsg:    "serialization failure",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Create serial failed",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Create(gomock.Any(), testShop, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCreateBulk
// ================================================================================

func (s *SerialHandlerTestSuite) TestCreateBulk() {
	s.Run("success: reports created, skipped and invalid numbers", func() {
		numbers := []string{"SN-1", "SN-1", "x"}
		s.mockCommands.EXPECT().CreateBulk(gomock.Any(), testShop, numbers).Return(&commands.BulkCreateResult{
			Created: []*serial.Serial{builder.NewSerialBuilder().WithNumber("SN-1").BuildDomain()},
			Skipped: []string{"SN-1"},
			Invalid: []commands.InvalidSerial{{SerialNumber: "x", Reason: "too short"}},
		}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/serials/bulk",
			map[string]any{"serial_numbers": numbers}, "bearer-token")

		var body resdto.BulkCreateResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(1, body.Created)
		s.Equal([]string{"SN-1"}, body.Skipped)
		s.Equal([]resdto.InvalidSerialResponse{{SerialNumber: "x", Reason: "too short"}}, body.Invalid)
	})

	s.Run("error: 400 on an empty list", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/serials/bulk",
			map[string]any{"serial_numbers": []string{}}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestAssign
// ================================================================================

func (s *SerialHandlerTestSuite) TestAssign() {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	reqBody := map[string]any{"serial_ids": ids, "product_id": "P1", "variant_id": "V1"}

	s.Run("success: returns the count", func() {
		s.mockCommands.EXPECT().Assign(gomock.Any(), testShop, commands.AssignInput{SerialIDs: ids, ProductID: "P1", VariantID: "V1"}).
			Return(2, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/serials/assign", reqBody, "bearer-token")

		var body resdto.CountResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(2, body.Count)
	})

	s.Run("error: partial match lists every blocking serial", func() {
		pmErr := shared.NewPartialMatchError(serial.ActionAssign, 2, []shared.Failure{
			{Ref: ids[1].String(), Reason: "serial is not available"},
		})
		s.mockCommands.EXPECT().Assign(gomock.Any(), testShop, gomock.Any()).Return(0, pmErr).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/serials/assign", reqBody, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "1 of 2 serials eligible")

		detail := httptest.DecodeErrorDetail[httperr.PartialMatchDetail](s.T(), rec, http.StatusBadRequest)
		s.Equal("assign", detail.Action)
		s.Equal(1, detail.Matched)
		s.Equal([]httperr.FailureDetail{{Serial: ids[1].String(), Reason: "serial is not available"}}, detail.Failures)
	})

	s.Run("error: 400 when variant_id is missing", func() {
		body := testutil.DtoMap(s.T(), reqBody, testutil.Field("variant_id", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/serials/assign", body, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})
}

// ================================================================================
// TestValidate
// ================================================================================

func (s *SerialHandlerTestSuite) TestValidate() {
	s.Run("success: negative answers are still 200", func() {
		s.mockQueries.EXPECT().Validate(gomock.Any(), testShop, "SN-9", nil, strp("V1")).
			Return(&queries.Validation{Message: "Serial number SN-9 has already been sold"}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/serials/validate?serial_number=SN-9&variant_id=V1", nil, "bearer-token")

		var body resdto.ValidationResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.False(body.Valid)
		s.Equal("Serial number SN-9 has already been sold", body.Message)
	})

	s.Run("error: 400 without serial_number", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/serials/validate", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid query")
	})
}

// ================================================================================
// TestRenameAndDelete
// ================================================================================

func (s *SerialHandlerTestSuite) TestRenameAndDelete() {
	id := uuid.New()

	s.Run("rename: success", func() {
		renamed := builder.NewSerialBuilder().With(func(b *builder.SerialBuilder) { b.ID = id }).WithNumber("SN-NEW").BuildDomain()
		s.mockCommands.EXPECT().RenameSerial(gomock.Any(), testShop, id, "SN-NEW").Return(renamed, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/serials/"+id.String(),
			map[string]any{"serial_number": "SN-NEW"}, "bearer-token")

		var body resdto.SerialResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(id, body.ID)
		s.Equal("SN-NEW", body.SerialNumber)
	})

	s.Run("rename: invalid id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPatch, "/api/serials/not-a-uuid",
			map[string]any{"serial_number": "SN-NEW"}, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid id")
	})

	s.Run("delete: soft by default", func() {
		deleted := builder.NewSerialBuilder().WithStatus(serial.StatusDeleted).BuildDomain()
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), testShop, id).Return(deleted, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/serials/"+id.String(), nil, "bearer-token")

		var body resdto.SerialResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("DELETED", body.Status)
	})

	s.Run("delete: hard removes the row", func() {
		s.mockCommands.EXPECT().Delete(gomock.Any(), testShop, id).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/serials/"+id.String()+"?hard=true", nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("delete: not found", func() {
		s.mockCommands.EXPECT().SoftDelete(gomock.Any(), testShop, id).Return(nil, commands.ErrSerialNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/serials/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "serial not found")
	})
}

func strp(s string) *string { return &s }
