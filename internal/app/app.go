package app

import (
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"github.com/lorenawear/loja/internal/adapters/api"
	"github.com/lorenawear/loja/internal/adapters/payments/mercadopago"
	"github.com/lorenawear/loja/internal/adapters/storage/localkv"
	"github.com/lorenawear/loja/internal/domain"
	"github.com/lorenawear/loja/internal/usecase"
)

const (
	defaultAPIURL = "https://geral-apilorenaecommerce.r954jc.easypanel.host/api"
	// public key de sandbox; en producción va MP_PUBLIC_KEY
	defaultMPPublicKey = "TEST-ce537820-227e-4f05-9a8c-762222333333"
)

type App struct {
	KV       domain.KeyValueStore
	API      *api.Client
	Cart     *usecase.CartUC
	Catalog  *usecase.CatalogUC
	Auth     *usecase.AuthUC
	Checkout *usecase.CheckoutUC
}

func NewApp() (*App, error) {
	home := os.Getenv("LOJA_HOME")
	if home == "" {
		cfgDir, err := os.UserConfigDir()
		if err != nil {
			return nil, err
		}
		home = filepath.Join(cfgDir, "loja")
	}
	kv := localkv.New(home)

	base := os.Getenv("LOJA_API_URL")
	if base == "" {
		base = defaultAPIURL
	}
	client := api.New(base, kv)

	publicKey := os.Getenv("MP_PUBLIC_KEY")
	if publicKey == "" {
		publicKey = defaultMPPublicKey
	}
	cards := mercadopago.NewGateway(publicKey)

	var oauthCfg *oauth2.Config
	googleID := os.Getenv("GOOGLE_CLIENT_ID")
	googleSecret := os.Getenv("GOOGLE_CLIENT_SECRET")
	if googleID != "" && googleSecret != "" {
		oauthCfg = &oauth2.Config{
			ClientID:     googleID,
			ClientSecret: googleSecret,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint:     google.Endpoint,
		}
	}

	a := &App{KV: kv, API: client}
	a.Cart = usecase.NewCartUC(kv)
	a.Catalog = &usecase.CatalogUC{Catalog: client}
	a.Auth = &usecase.AuthUC{API: client, KV: kv, OAuth: oauthCfg}
	a.Checkout = &usecase.CheckoutUC{Cart: a.Cart, Orders: client, Cards: cards, Auth: a.Auth}
	return a, nil
}
