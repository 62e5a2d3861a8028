package e2e

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AllStackDev1/oja-client/domain"
)

// TestServer is an in-process stand-in for the Oja API. It keeps users, OTP
// pins and issued tokens in memory and answers with the same envelope shape
// the production API uses, so the SDK under test cannot tell the difference.
type TestServer struct {
	Server  *httptest.Server
	Router  *gin.Engine
	BaseURL string

	mu       sync.Mutex
	users    map[string]*serverUser // keyed by email
	pins     map[string]*pinState   // keyed by pinId
	tokens   map[string]string      // authToken -> email
	sequence int

	// RequireLoginOTP makes /auth/login answer with an OTP challenge instead
	// of a session, mimicking a device the API does not recognize.
	RequireLoginOTP bool
}

type serverUser struct {
	ID            string
	FirstName     string
	LastName      string
	Email         string
	PhoneNumber   string
	Password      string
	EmailVerified bool
	Deals         []map[string]interface{}
}

type pinState struct {
	Phone string
	Email string
	Code  string
}

// NewTestServer starts the fake API and registers cleanup with t.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ts := &TestServer{
		users:  map[string]*serverUser{},
		pins:   map[string]*pinState{},
		tokens: map[string]string{},
	}
	ts.Router = ts.buildRouter()
	ts.Server = httptest.NewServer(ts.Router)
	ts.BaseURL = ts.Server.URL

	t.Cleanup(ts.Server.Close)
	return ts
}

func (ts *TestServer) buildRouter() *gin.Engine {
	r := gin.New()
	r.POST("/auth/register", ts.handleRegister)
	r.POST("/auth/verify-otp", ts.handleVerifyOTP)
	r.POST("/auth/resend-otp", ts.handleResendOTP)
	r.POST("/auth/login", ts.handleLogin)
	r.GET("/auth/profile", ts.authed(ts.handleProfile))
	r.PATCH("/auth/verify-email/:token", ts.handleVerifyEmail)
	r.POST("/deals", ts.authed(ts.handleCreateDeal))
	r.GET("/deals", ts.authed(ts.handleListDeals))
	r.GET("/currencies", ts.handleCurrencies)
	return r
}

// CurrentOTP exposes the pin's code so tests can play the SMS recipient.
func (ts *TestServer) CurrentOTP(pinID string) string {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if pin, ok := ts.pins[pinID]; ok {
		return pin.Code
	}
	return ""
}

// SeedUser registers a verified account directly, skipping the OTP dance.
func (ts *TestServer) SeedUser(firstName, lastName, email, phone, password string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.sequence++
	ts.users[email] = &serverUser{
		ID:          fmt.Sprintf("usr_%03d", ts.sequence),
		FirstName:   firstName,
		LastName:    lastName,
		Email:       email,
		PhoneNumber: phone,
		Password:    password,
	}
}

func (ts *TestServer) newPin(email, phone string) string {
	pinID := uuid.NewString()
	ts.pins[pinID] = &pinState{Phone: phone, Email: email, Code: "123456"}
	return pinID
}

func (ts *TestServer) handleRegister(c *gin.Context) {
	var payload domain.RegisterPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	if _, exists := ts.users[payload.Email]; exists {
		fail(c, http.StatusConflict, "User already exists")
		return
	}

	ts.sequence++
	ts.users[payload.Email] = &serverUser{
		ID:          fmt.Sprintf("usr_%03d", ts.sequence),
		FirstName:   payload.FirstName,
		LastName:    payload.LastName,
		Email:       payload.Email,
		PhoneNumber: payload.PhoneNumber,
		Password:    payload.Password,
	}
	pinID := ts.newPin(payload.Email, payload.PhoneNumber)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Registration successful",
		"data": gin.H{
			"phoneNumber": payload.PhoneNumber,
			"user":        gin.H{"phoneNumber": payload.PhoneNumber},
			"otpResponse": gin.H{"pinId": pinID},
		},
	})
}

func (ts *TestServer) handleVerifyOTP(c *gin.Context) {
	var challenge struct {
		Code      string `json:"code"`
		PinID     string `json:"pinId"`
		ExpiresIn string `json:"expiresIn"`
	}
	if err := c.ShouldBindJSON(&challenge); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	pin, ok := ts.pins[challenge.PinID]
	if !ok || pin.Code != challenge.Code {
		fail(c, http.StatusUnauthorized, "Invalid or expired OTP")
		return
	}
	delete(ts.pins, challenge.PinID)

	user := ts.users[pin.Email]
	token := "tok_" + uuid.NewString()
	ts.tokens[token] = user.Email

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"message":   "OTP verified",
		"authToken": token,
		"user":      publicUser(user),
	})
}

func (ts *TestServer) handleResendOTP(c *gin.Context) {
	var body struct {
		PhoneNumber string `json:"phoneNumber"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, u := range ts.users {
		if u.PhoneNumber == body.PhoneNumber {
			pinID := ts.newPin(u.Email, u.PhoneNumber)
			c.JSON(http.StatusOK, gin.H{
				"success": true,
				"message": gin.H{"pin_id": pinID, "to": u.PhoneNumber},
			})
			return
		}
	}
	fail(c, http.StatusNotFound, "No pending registration for that number")
}

func (ts *TestServer) handleLogin(c *gin.Context) {
	var creds domain.Credentials
	if err := c.ShouldBindJSON(&creds); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	user, ok := ts.users[creds.Email]
	if !ok || user.Password != creds.Password {
		fail(c, http.StatusUnauthorized, "Invalid email or password")
		return
	}

	if ts.RequireLoginOTP {
		pinID := ts.newPin(user.Email, user.PhoneNumber)
		c.JSON(http.StatusOK, gin.H{
			"success": true,
			"message": "OTP sent",
			"data":    gin.H{"to": user.PhoneNumber, "pinId": pinID},
		})
		return
	}

	token := "tok_" + uuid.NewString()
	ts.tokens[token] = user.Email
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Login successful",
		"data": gin.H{
			"user":      publicUser(user),
			"authToken": token,
		},
	})
}

func (ts *TestServer) handleProfile(c *gin.Context, user *serverUser) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    gin.H{"user": publicUser(user)},
	})
}

func (ts *TestServer) handleVerifyEmail(c *gin.Context) {
	token := c.Param("token")

	ts.mu.Lock()
	defer ts.mu.Unlock()
	for _, u := range ts.users {
		if "email_"+u.ID == token {
			u.EmailVerified = true
			c.JSON(http.StatusOK, gin.H{"success": true, "message": "Email verified"})
			return
		}
	}
	fail(c, http.StatusNotFound, "Invalid verification token")
}

func (ts *TestServer) handleCreateDeal(c *gin.Context, user *serverUser) {
	var deal map[string]interface{}
	if err := c.ShouldBindJSON(&deal); err != nil {
		fail(c, http.StatusBadRequest, "Invalid request body")
		return
	}

	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.sequence++
	deal["_id"] = fmt.Sprintf("deal_%03d", ts.sequence)
	deal["status"] = "pending"
	user.Deals = append(user.Deals, deal)

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Deal created",
		"data":    deal,
	})
}

func (ts *TestServer) handleListDeals(c *gin.Context, user *serverUser) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	deals := user.Deals
	if deals == nil {
		deals = []map[string]interface{}{}
	}
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data":    deals,
	})
}

func (ts *TestServer) handleCurrencies(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "OK",
		"data": []gin.H{
			{"code": "NGN", "name": "Nigerian Naira", "symbol": "₦"},
			{"code": "CAD", "name": "Canadian Dollar", "symbol": "$"},
		},
	})
}

// authed resolves the bearer token to a user before running the handler.
func (ts *TestServer) authed(handler func(*gin.Context, *serverUser)) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if token == "" || token == header {
			fail(c, http.StatusUnauthorized, "Missing authorization token")
			return
		}

		ts.mu.Lock()
		email, ok := ts.tokens[token]
		user := ts.users[email]
		ts.mu.Unlock()
		if !ok || user == nil {
			fail(c, http.StatusUnauthorized, "Invalid authorization token")
			return
		}
		handler(c, user)
	}
}

func publicUser(u *serverUser) gin.H {
	return gin.H{
		"_id":           u.ID,
		"firstName":     u.FirstName,
		"lastName":      u.LastName,
		"email":         u.Email,
		"phoneNumber":   u.PhoneNumber,
		"emailVerified": u.EmailVerified,
	}
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"success": false, "message": message})
}
