package auth_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/alphios72/NewsinsightUI/internal"
	"github.com/alphios72/NewsinsightUI/internal/auth"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// MockAuthService implements auth.ServiceAPI for testing
type MockAuthService struct {
	user  *auth.User
	token string
}

func (m *MockAuthService) Authenticate(dto auth.LoginDTO) (string, time.Time, *auth.User, error) {
	if err := dto.Validate(); err != nil {
		return "", time.Time{}, nil, err
	}
	if m.user == nil || dto.Username != m.user.Username {
		return "", time.Time{}, nil, internal.ErrInvalidCredentials
	}
	return m.token, time.Now().Add(24 * time.Hour), m.user, nil
}

func (m *MockAuthService) ValidateSessionToken(tokenString string) (*internal.Session, error) {
	if tokenString != m.token {
		return nil, internal.ErrInvalidToken
	}
	return &internal.Session{UserID: m.user.ID, Username: m.user.Username, Role: m.user.Role}, nil
}

var _ = Describe("Auth Handler", func() {
	var (
		service *MockAuthService
		handler *auth.Handler
	)

	BeforeEach(func() {
		service = &MockAuthService{
			user:  &auth.User{ID: 1, Username: "admin", Role: internal.RoleAdmin},
			token: "issued-token",
		}
		handler = auth.NewHandler(service, false)
	})

	login := func(body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/login", bytes.NewBufferString(body))
		rec := httptest.NewRecorder()
		handler.Login(rec, req)
		return rec
	}

	Describe("Login", func() {
		Context("with valid credentials", func() {
			It("should set the http-only session cookie", func() {
				rec := login(`{"username": "admin", "password": "admin_password"}`)
				Expect(rec.Code).To(Equal(http.StatusOK))

				cookies := rec.Result().Cookies()
				Expect(cookies).To(HaveLen(1))
				Expect(cookies[0].Name).To(Equal(auth.SessionCookieName))
				Expect(cookies[0].Value).To(Equal("issued-token"))
				Expect(cookies[0].HttpOnly).To(BeTrue())
				Expect(cookies[0].Path).To(Equal("/"))
				Expect(cookies[0].MaxAge).To(BeNumerically(">", 0))
			})

			It("should report the username and role in the body", func() {
				rec := login(`{"username": "admin", "password": "admin_password"}`)

				var body map[string]interface{}
				Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
				Expect(body["success"]).To(BeTrue())
				Expect(body["username"]).To(Equal("admin"))
				Expect(body["role"]).To(Equal("ADMIN"))
			})
		})

		Context("with bad credentials", func() {
			It("should return 401 without a cookie", func() {
				rec := login(`{"username": "ghost", "password": "x"}`)
				Expect(rec.Code).To(Equal(http.StatusUnauthorized))
				Expect(rec.Result().Cookies()).To(BeEmpty())
			})
		})

		Context("with a missing field", func() {
			It("should return 400", func() {
				rec := login(`{"username": "admin"}`)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})

		Context("with a malformed body", func() {
			It("should return 400", func() {
				rec := login(`{broken`)
				Expect(rec.Code).To(Equal(http.StatusBadRequest))
			})
		})
	})

	Describe("Logout", func() {
		It("should expire the session cookie", func() {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
			rec := httptest.NewRecorder()
			handler.Logout(rec, req)

			Expect(rec.Code).To(Equal(http.StatusNoContent))
			cookies := rec.Result().Cookies()
			Expect(cookies).To(HaveLen(1))
			Expect(cookies[0].Name).To(Equal(auth.SessionCookieName))
			Expect(cookies[0].MaxAge).To(BeNumerically("<", 0))
		})
	})
})
