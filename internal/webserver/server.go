package webserver

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/chaintrace/chaintrace/internal/app"
	"github.com/golang-jwt/jwt/v5"
	jsoniter "github.com/json-iterator/go"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
)

// ContextKey is the echo context key holding the application container.
const ContextKey = "chaintrace.app"

var server *WebServer

// WebServer is the admin API server.
type WebServer struct {
	root *echo.Echo
	api  *echo.Group
	pub  *echo.Group
	app  app.AppContext
}

// Init builds the global web server around the application container.
// Routes are registered afterwards via ApiGET and friends.
func Init(actx app.AppContext) *WebServer {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = jsonSerializer{}
	e.Use(middleware.Recover())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set(ContextKey, actx)
			return next(c)
		}
	})

	pub := e.Group("/api")
	api := e.Group("/api")
	api.Use(echojwt.WithConfig(echojwt.Config{
		SigningKey: []byte(actx.Config().Web.JwtSecret),
	}))

	server = &WebServer{root: e, api: api, pub: pub, app: actx}
	return server
}

// Start runs the server until ctx is cancelled.
func (s *WebServer) Start(ctx context.Context) error {
	cfg := s.app.Config().Web
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	zap.L().Info("admin api listening", zap.String("addr", addr))

	errChan := make(chan error, 1)
	go func() {
		errChan <- s.root.Start(addr)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return s.root.Shutdown(shutdownCtx)
	case err := <-errChan:
		if err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	}
}

// Instance returns the global server (set by Init).
func Instance() *WebServer {
	return server
}

// PubPOST registers an unauthenticated POST endpoint, e.g. login.
func PubPOST(path string, h echo.HandlerFunc) {
	server.pub.POST(path, h)
}

// ApiGET registers an authenticated GET endpoint.
func ApiGET(path string, h echo.HandlerFunc) {
	server.api.GET(path, h)
}

// ApiPOST registers an authenticated POST endpoint.
func ApiPOST(path string, h echo.HandlerFunc) {
	server.api.POST(path, h)
}

// ApiPUT registers an authenticated PUT endpoint.
func ApiPUT(path string, h echo.HandlerFunc) {
	server.api.PUT(path, h)
}

// ApiDELETE registers an authenticated DELETE endpoint.
func ApiDELETE(path string, h echo.HandlerFunc) {
	server.api.DELETE(path, h)
}

// GetAppContext extracts the application container from an echo context.
func GetAppContext(c echo.Context) app.AppContext {
	return c.Get(ContextKey).(app.AppContext)
}

// IssueToken signs a JWT for the given profile identity.
func IssueToken(secret string, uid int64, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"uid":      fmt.Sprintf("%d", uid),
		"username": username,
		"role":     role,
		"exp":      time.Now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ActorID extracts the authenticated profile ID from the JWT bound to
// the request, or 0 when no valid identity is present.
func ActorID(c echo.Context) int64 {
	token, ok := c.Get("user").(*jwt.Token)
	if !ok {
		return 0
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0
	}
	uid, _ := claims["uid"].(string)
	var id int64
	if _, err := fmt.Sscanf(strings.TrimSpace(uid), "%d", &id); err != nil {
		return 0
	}
	return id
}

// jsonSerializer plugs jsoniter into echo.
type jsonSerializer struct{}

func (jsonSerializer) Serialize(c echo.Context, i interface{}, indent string) error {
	enc := jsoniter.NewEncoder(c.Response())
	if indent != "" {
		enc.SetIndent("", indent)
	}
	return enc.Encode(i)
}

func (jsonSerializer) Deserialize(c echo.Context, i interface{}) error {
	err := jsoniter.NewDecoder(c.Request().Body).Decode(i)
	if err == io.EOF {
		return nil
	}
	return err
}
