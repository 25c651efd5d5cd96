package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/superfruitcenter/fruitmart/internal/handler/http/mocks"
	"github.com/superfruitcenter/fruitmart/internal/middleware"
	"github.com/superfruitcenter/fruitmart/internal/models"
)

func TestOrderHandler_PlaceOrder(t *testing.T) {
	userID := uuid.New()
	addressID := uuid.New()
	orderID := uuid.New()

	body := `{"address_id":"` + addressID.String() + `","payment_method":"cash_on_delivery"}`

	tests := []struct {
		name           string
		userID         *uuid.UUID
		body           string
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
	}{
		{
			name:   "placed_order_return_201",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), userID, addressID, models.PaymentCashOnDelivery).Return(orderID, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusCreated,
		},
		{
			name: "unauthorized_request_return_401",
			body: body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "bad_request_return_400",
			userID: &userID,
			body:   "not json",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "placement_in_flight_return_409",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, models.ErrPlacementInFlight).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusConflict,
		},
		{
			name:   "empty_cart_return_422",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, models.ErrEmptyCart).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "online_payment_return_422",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, models.ErrPaymentMethodDisabled).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
		{
			name:   "unknown_address_return_404",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, models.ErrDataNotFound).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "exhausted_placement_return_502",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, models.ErrPlacementExhausted).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:   "internal_error_return_500",
			userID: &userID,
			body:   body,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().Checkout(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(uuid.Nil, errors.New("boom")).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodPost, "/api/user/orders", strings.NewReader(tt.body))
			require.NoError(t, err)

			if tt.userID != nil {
				req = req.WithContext(middleware.WithUserID(req.Context(), *tt.userID))
			}

			w := httptest.NewRecorder()

			h := NewOrderHandler(tt.setup(t)).PlaceOrder()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantStatusCode == http.StatusCreated {
				var got placeOrderResp
				require.NoError(t, json.NewDecoder(res.Body).Decode(&got))
				assert.Equal(t, orderID.String(), got.OrderID)
			}
		})
	}
}

func TestOrderHandler_ListUserOrders(t *testing.T) {
	userID := uuid.New()
	orderID := uuid.New()
	productID := uuid.New()
	createdAt := time.Now()

	tests := []struct {
		name           string
		userID         *uuid.UUID
		setup          func(t *testing.T) *mocks.MockOrderService
		wantStatusCode int
		wantBody       []listOrdersResp
	}{
		{
			name:   "valid_request_return_200",
			userID: &userID,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), userID).Return([]models.Order{
					{
						ID:     orderID,
						UserID: userID,
						Items: []models.OrderLineItem{
							{
								ProductID:  productID,
								Name:       "Alphonso Mango",
								UnitPrice:  decimal.NewFromInt(300),
								Amount:     "2kg",
								Quantity:   decimal.NewFromInt(2),
								TotalPrice: decimal.NewFromInt(600),
							},
						},
						Subtotal:      decimal.NewFromInt(600),
						DeliveryFee:   decimal.NewFromInt(20),
						TotalAmount:   decimal.NewFromInt(620),
						PaymentMethod: models.PaymentCashOnDelivery,
						Status:        models.OrderStatusPlaced,
						CreatedAt:     createdAt,
					},
				}, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusOK,
			wantBody: []listOrdersResp{{
				ID: orderID.String(),
				Items: []orderItemResp{{
					ProductID:  productID.String(),
					Name:       "Alphonso Mango",
					Amount:     "2kg",
					UnitPrice:  "300",
					TotalPrice: "600",
				}},
				Subtotal:      "600",
				DeliveryFee:   "20",
				TotalAmount:   "620",
				PaymentMethod: "cash_on_delivery",
				Status:        models.OrderStatusPlaced,
				CreatedAt:     createdAt.Format(time.RFC3339),
			}},
		},
		{
			name:   "no_orders_return_204",
			userID: &userID,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Return(nil, nil).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusNoContent,
		},
		{
			name: "unauthorized_request_return_401",
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Times(0)
				return svcMock
			},
			wantStatusCode: http.StatusUnauthorized,
		},
		{
			name:   "internal_error_return_500",
			userID: &userID,
			setup: func(t *testing.T) *mocks.MockOrderService {
				ctrl := gomock.NewController(t)
				defer ctrl.Finish()

				svcMock := mocks.NewMockOrderService(ctrl)
				svcMock.EXPECT().ListUserOrders(gomock.Any(), gomock.Any()).Return(nil, models.ErrInternalError).AnyTimes()
				return svcMock
			},
			wantStatusCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest(http.MethodGet, "/api/user/orders", nil)
			require.NoError(t, err)

			if tt.userID != nil {
				req = req.WithContext(middleware.WithUserID(req.Context(), *tt.userID))
			}

			w := httptest.NewRecorder()

			h := NewOrderHandler(tt.setup(t)).ListUserOrders()
			h(w, req)

			res := w.Result()
			defer res.Body.Close()
			assert.Equal(t, tt.wantStatusCode, res.StatusCode)

			if tt.wantBody != nil {
				resBody, err := io.ReadAll(res.Body)
				require.NoError(t, err)

				var got []listOrdersResp
				require.NoError(t, json.Unmarshal(resBody, &got))

				if diff := cmp.Diff(tt.wantBody, got); diff != "" {
					t.Errorf("mismatch (-want +got):\n%s", diff)
				}
			}
		})
	}
}
