package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/lorenawear/loja/internal/domain"
)

// AuthUC maneja la sesión del dispositivo: login contra el backend y el
// espejo local de token y perfil bajo las claves "token" y "user".
type AuthUC struct {
	API   domain.AuthAPI
	KV    domain.KeyValueStore
	OAuth *oauth2.Config
}

func (uc *AuthUC) Login(ctx context.Context, email, password string) (*domain.Customer, error) {
	if email == "" || password == "" {
		return nil, errors.New("email y password requeridos")
	}
	token, user, err := uc.API.Login(ctx, email, password)
	if err != nil {
		return nil, err
	}
	uc.saveSession(token, user)
	return user, nil
}

func (uc *AuthUC) Register(ctx context.Context, name, email, password string) (*domain.Customer, error) {
	if name == "" || email == "" || password == "" {
		return nil, errors.New("nombre, email y password requeridos")
	}
	token, user, err := uc.API.Register(ctx, name, email, password)
	if err != nil {
		return nil, err
	}
	uc.saveSession(token, user)
	return user, nil
}

func (uc *AuthUC) Logout() {
	_ = uc.KV.Delete(domain.KeyToken)
	_ = uc.KV.Delete(domain.KeyUser)
}

func (uc *AuthUC) saveSession(token string, user *domain.Customer) {
	if token != "" {
		if err := uc.KV.Set(domain.KeyToken, token); err != nil {
			log.Warn().Err(err).Msg("no se pudo guardar el token")
		}
	}
	if user != nil {
		b, _ := json.Marshal(user)
		if err := uc.KV.Set(domain.KeyUser, string(b)); err != nil {
			log.Warn().Err(err).Msg("no se pudo guardar el perfil")
		}
	}
}

// CurrentUser devuelve el perfil espejado localmente, sin ir al backend.
// nil si no hay sesión o el snapshot está roto.
func (uc *AuthUC) CurrentUser() *domain.Customer {
	raw, ok := uc.KV.Get(domain.KeyUser)
	if !ok || raw == "" {
		return nil
	}
	var u domain.Customer
	if err := json.Unmarshal([]byte(raw), &u); err != nil {
		return nil
	}
	if u.Email == "" {
		return nil
	}
	return &u
}

// IsAuthenticated verifica que haya token y que, si es un JWT con exp, no
// esté vencido. Los tokens opacos se dan por válidos: el backend tiene la
// última palabra en cada request.
func (uc *AuthUC) IsAuthenticated() bool {
	tok, ok := uc.KV.Get(domain.KeyToken)
	if !ok || tok == "" {
		return false
	}
	return !tokenExpired(tok)
}

func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return time.Now().After(exp.Time)
}

// RefreshProfile trae el perfil fresco del backend y actualiza el espejo.
func (uc *AuthUC) RefreshProfile(ctx context.Context) (*domain.Customer, error) {
	user, err := uc.API.Profile(ctx)
	if err != nil {
		return nil, err
	}
	uc.saveSession("", user)
	return user, nil
}

func (uc *AuthUC) UpdateProfile(ctx context.Context, c *domain.Customer) error {
	if c == nil || c.Email == "" {
		return errors.New("perfil incompleto")
	}
	if err := uc.API.UpdateProfile(ctx, c); err != nil {
		return err
	}
	uc.saveSession("", c)
	return nil
}

// GoogleLogin corre el flujo auth-code con redirect de loopback: levanta un
// listener local, abre la URL de consentimiento, intercambia el code y canjea
// la identidad de Google por un bearer del backend.
func (uc *AuthUC) GoogleLogin(ctx context.Context, openURL func(string)) (*domain.Customer, error) {
	if uc.OAuth == nil {
		return nil, errors.New("oauth no configurado")
	}
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	defer ln.Close()

	cfg := *uc.OAuth
	cfg.RedirectURL = "http://" + ln.Addr().String() + "/callback"
	state := uuid.New().String()

	codeCh := make(chan string, 1)
	mux := http.NewServeMux()
	mux.HandleFunc("/callback", func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("state") != state {
			http.Error(w, "state", 400)
			return
		}
		fmt.Fprint(w, "Listo, ya podés cerrar esta ventana.")
		codeCh <- q.Get("code")
	})
	srv := &http.Server{Handler: mux}
	go func() { _ = srv.Serve(ln) }()
	defer func() {
		shutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutCtx)
	}()

	openURL(cfg.AuthCodeURL(state, oauth2.AccessTypeOnline))

	var code string
	select {
	case code = <-codeCh:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if code == "" {
		return nil, errors.New("autorización cancelada")
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange oauth: %w", err)
	}
	client := cfg.Client(ctx, tok)
	resp, err := client.Get("https://www.googleapis.com/oauth2/v3/userinfo")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("userinfo status %d", resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	var info struct {
		Email string `json:"email"`
		Name  string `json:"name"`
	}
	_ = json.Unmarshal(body, &info)
	if info.Email == "" {
		return nil, errors.New("userinfo sin email")
	}

	token, user, err := uc.API.GoogleLogin(ctx, info.Email, info.Name, tok.AccessToken)
	if err != nil {
		return nil, err
	}
	if user == nil {
		user = &domain.Customer{Name: info.Name, Email: info.Email}
	}
	uc.saveSession(token, user)
	return user, nil
}
