package app

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"

	"techstore/config"
	"techstore/ledger"
	"techstore/utils"
)

type envelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Fields  map[string]string `json:"fields"`
}

type cartData struct {
	Items []struct {
		ID       string `json:"id"`
		Quantity int    `json:"quantity"`
	} `json:"items"`
	Totals struct {
		Subtotal  int64 `json:"subtotal"`
		Total     int64 `json:"total"`
		ItemCount int   `json:"item_count"`
	} `json:"totals"`
	Empty  bool `json:"empty"`
	Locked bool `json:"locked"`
}

type AppSuite struct {
	suite.Suite
	cfg   *config.Config
	app   *App
	token string
}

func (s *AppSuite) SetupTest() {
	hash, err := utils.HashAdminKey("admin-key")
	s.Require().NoError(err)

	s.cfg = &config.Config{
		AppEnv:        "test",
		Port:          "0",
		LogLevel:      "error",
		JWTSecret:     "test-secret",
		SessionTTL:    time.Hour,
		Pricing:       ledger.DefaultPricing(),
		CheckoutDelay: 10 * time.Millisecond,
		AdminKeyHash:  hash,
	}
	s.app, err = New(s.cfg, zap.NewNop())
	s.Require().NoError(err)
	s.token = s.newSession()
}

func (s *AppSuite) TearDownTest() {
	s.app.Close()
}

func (s *AppSuite) do(method, path, token string, body interface{}) (*httptest.ResponseRecorder, envelope) {
	var buf bytes.Buffer
	if body != nil {
		s.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	s.app.Router.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func (s *AppSuite) newSession() string {
	w, env := s.do(http.MethodPost, "/session", "", nil)
	s.Require().Equal(http.StatusCreated, w.Code)

	var data struct {
		Token string `json:"token"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Require().NotEmpty(data.Token)
	return data.Token
}

func (s *AppSuite) cart(env envelope) cartData {
	var c cartData
	s.Require().NoError(json.Unmarshal(env.Data, &c))
	return c
}

func validCheckout() map[string]interface{} {
	return map[string]interface{}{
		"shipping": map[string]string{
			"full_name": "Nguyễn Văn A", "email": "a@example.com", "phone": "0900000000",
			"address": "1 Lê Lợi", "city": "Hà Nội", "zip_code": "100000",
		},
		"payment": map[string]string{
			"card_number": "4111111111111234", "expiry_date": "12/30",
			"cvv": "123", "cardholder_name": "NGUYEN VAN A",
		},
	}
}

func (s *AppSuite) TestPublicEndpoints() {
	w, _ := s.do(http.MethodGet, "/health", "", nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodGet, "/", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "TechStore API")

	w, _ = s.do(http.MethodGet, "/products?page=1&limit=4", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), `"total_pages":2`)

	w, _ = s.do(http.MethodGet, "/products/1/detail", "", nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "29.990.000đ")

	w, _ = s.do(http.MethodGet, "/products/99", "", nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AppSuite) TestCartRequiresSession() {
	w, _ := s.do(http.MethodGet, "/cart", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)

	w, _ = s.do(http.MethodGet, "/cart", "garbage", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AppSuite) TestCartFlow() {
	w, env := s.do(http.MethodGet, "/cart", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	s.True(s.cart(env).Empty)

	w, env = s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1"})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal("iPhone 15 Pro Max đã được thêm vào giỏ hàng", env.Message)

	w, env = s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1", "quantity": 2})
	s.Require().Equal(http.StatusOK, w.Code)
	c := s.cart(env)
	s.Equal(3, c.Items[0].Quantity)
	s.Equal(3, c.Totals.ItemCount)

	w, _ = s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "nope"})
	s.Equal(http.StatusNotFound, w.Code)

	w, _ = s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1", "quantity": 0})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, env = s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{})
	s.Equal(http.StatusBadRequest, w.Code)
	s.Contains(env.Fields, "product_id")

	w, _ = s.do(http.MethodPatch, "/cart/items/1", s.token, map[string]interface{}{"quantity": 0})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w, env = s.do(http.MethodPatch, "/cart/items/1", s.token, map[string]interface{}{"quantity": 1})
	s.Require().Equal(http.StatusOK, w.Code)
	s.Equal(int64(29990000), s.cart(env).Totals.Subtotal)

	w, env = s.do(http.MethodPatch, "/cart/items/404", s.token, map[string]interface{}{"quantity": 3})
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.cart(env).Items, 1)

	w, env = s.do(http.MethodDelete, "/cart/items/404", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Len(s.cart(env).Items, 1)

	w, env = s.do(http.MethodDelete, "/cart/items/1", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.True(s.cart(env).Empty)

	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "3"})
	w, env = s.do(http.MethodDelete, "/cart", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.True(s.cart(env).Empty)
}

func (s *AppSuite) TestRefreshSession() {
	w, env := s.do(http.MethodPost, "/session/refresh", s.token, nil)
	s.Require().Equal(http.StatusOK, w.Code)

	var data struct {
		Token     string `json:"token"`
		ExpiresAt int64  `json:"expires_at"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.NotEmpty(data.Token)
	s.GreaterOrEqual(data.ExpiresAt, time.Now().Add(s.cfg.SessionTTL).Unix()-1)

	w, _ = s.do(http.MethodGet, "/cart", data.Token, nil)
	s.Equal(http.StatusOK, w.Code)

	w, _ = s.do(http.MethodPost, "/session/refresh", "", nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AppSuite) TestSessionsAreIsolated() {
	other := s.newSession()
	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "2"})

	_, env := s.do(http.MethodGet, "/cart", other, nil)
	s.True(s.cart(env).Empty)
}

func (s *AppSuite) TestCheckoutFlow() {
	w, _ := s.do(http.MethodPost, "/checkout", s.token, validCheckout())
	s.Equal(http.StatusConflict, w.Code)

	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1"})
	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "2"})

	invalid := validCheckout()
	invalid["shipping"].(map[string]string)["email"] = "  "
	w, env := s.do(http.MethodPost, "/checkout", s.token, invalid)
	s.Equal(http.StatusBadRequest, w.Code)
	s.Equal("email is required", env.Fields["email"])

	w, env = s.do(http.MethodPost, "/checkout", s.token, validCheckout())
	s.Require().Equal(http.StatusOK, w.Code)
	s.Contains(env.Message, "63.778.000đ")

	var data struct {
		Order struct {
			OrderNumber string `json:"order_number"`
			CardLast4   string `json:"card_last4"`
		} `json:"order"`
		FormattedTotal string `json:"formatted_total"`
	}
	s.Require().NoError(json.Unmarshal(env.Data, &data))
	s.Equal("1234", data.Order.CardLast4)
	s.Equal("63.778.000đ", data.FormattedTotal)

	_, env = s.do(http.MethodGet, "/cart", s.token, nil)
	s.True(s.cart(env).Empty)

	w, _ = s.do(http.MethodGet, "/admin/orders", "", nil)
	s.Equal(http.StatusForbidden, w.Code)

	req := httptest.NewRequest(http.MethodGet, "/admin/orders/"+data.Order.OrderNumber, nil)
	req.Header.Set("X-Admin-Key", "admin-key")
	rec := httptest.NewRecorder()
	s.app.Router.ServeHTTP(rec, req)
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), data.Order.OrderNumber)
}

func (s *AppSuite) TestPendingCheckoutLocksCart() {
	s.cfg.CheckoutDelay = time.Minute
	app, err := New(s.cfg, zap.NewNop())
	s.Require().NoError(err)
	s.app = app
	s.token = s.newSession()

	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1"})

	done := make(chan int, 1)
	go func() {
		w, _ := s.do(http.MethodPost, "/checkout", s.token, validCheckout())
		done <- w.Code
	}()

	s.Eventually(func() bool {
		_, env := s.do(http.MethodGet, "/checkout", s.token, nil)
		return strings.Contains(string(env.Data), `"pending":true`)
	}, time.Second, 5*time.Millisecond)

	w, _ := s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "2"})
	s.Equal(http.StatusLocked, w.Code)
	w, _ = s.do(http.MethodDelete, "/cart", s.token, nil)
	s.Equal(http.StatusLocked, w.Code)

	w, _ = s.do(http.MethodDelete, "/checkout", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusConflict, <-done)

	_, env := s.do(http.MethodGet, "/cart", s.token, nil)
	c := s.cart(env)
	s.Len(c.Items, 1)
	s.False(c.Locked)

	w, _ = s.do(http.MethodDelete, "/checkout", s.token, nil)
	s.Equal(http.StatusNotFound, w.Code)
}

func (s *AppSuite) TestEndSessionCancelsCheckout() {
	s.cfg.CheckoutDelay = time.Minute
	app, err := New(s.cfg, zap.NewNop())
	s.Require().NoError(err)
	s.app = app
	s.token = s.newSession()

	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "1"})

	done := make(chan int, 1)
	go func() {
		w, _ := s.do(http.MethodPost, "/checkout", s.token, validCheckout())
		done <- w.Code
	}()
	s.Eventually(func() bool {
		_, env := s.do(http.MethodGet, "/checkout", s.token, nil)
		return strings.Contains(string(env.Data), `"pending":true`)
	}, time.Second, 5*time.Millisecond)

	w, _ := s.do(http.MethodDelete, "/session", s.token, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Equal(http.StatusConflict, <-done)

	w, _ = s.do(http.MethodGet, "/cart", s.token, nil)
	s.Equal(http.StatusUnauthorized, w.Code)
}

func (s *AppSuite) TestCartEvents() {
	srv := httptest.NewServer(s.app.Router)
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/cart/events?token="+s.token, nil)
	s.Require().NoError(err)
	resp, err := srv.Client().Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()
	s.Equal(http.StatusOK, resp.StatusCode)

	reader := bufio.NewReader(resp.Body)
	nextData := func() string {
		for {
			line, err := reader.ReadString('\n')
			s.Require().NoError(err)
			if strings.HasPrefix(line, "data:") {
				return line
			}
		}
	}

	s.Contains(nextData(), `"empty":true`)

	s.do(http.MethodPost, "/cart/items", s.token, map[string]interface{}{"product_id": "3"})
	data := nextData()
	s.Contains(data, `"id":"3"`)
	s.Contains(data, `"empty":false`)
}

func TestNewRefusesDefaultSecretInProduction(t *testing.T) {
	cfg := &config.Config{
		AppEnv:     "production",
		JWTSecret:  config.DefaultJWTSecret,
		SessionTTL: time.Hour,
		Pricing:    ledger.DefaultPricing(),
	}
	_, err := New(cfg, zap.NewNop())
	assert.ErrorIs(t, err, config.ErrDefaultJWTSecret)
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(AppSuite))
}
