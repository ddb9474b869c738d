package main

import (
	"context"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tendant/chi-demo/app"
	dbutils "github.com/tendant/db-utils/db"
	"github.com/tendant/simple-user-admin/auth"
	"github.com/tendant/simple-user-admin/pkg/iam"
	"github.com/tendant/simple-user-admin/pkg/login"
	"github.com/tendant/simple-user-admin/pkg/policy"
	"github.com/tendant/simple-user-admin/pkg/role"
	"golang.org/x/exp/slog"
)

type AdminDbConfig struct {
	Host     string `env:"ADMIN_PG_HOST" env-default:"localhost"`
	Port     uint16 `env:"ADMIN_PG_PORT" env-default:"5432"`
	Database string `env:"ADMIN_PG_DATABASE" env-default:"admin_db"`
	User     string `env:"ADMIN_PG_USER" env-default:"admin"`
	Password string `env:"ADMIN_PG_PASSWORD" env-default:"pwd"`
}

func (d AdminDbConfig) toDbConfig() dbutils.DbConfig {
	return dbutils.DbConfig{
		Host:     d.Host,
		Port:     d.Port,
		Database: d.Database,
		User:     d.User,
		Password: d.Password,
	}
}

type JwtConfig struct {
	JwtSecret      string `env:"JWT_SECRET" env-default:"very-secure-jwt-secret"`
	CookieHttpOnly bool   `env:"COOKIE_HTTP_ONLY" env-default:"true"`
	CookieSecure   bool   `env:"COOKIE_SECURE" env-default:"false"`
}

type StaticConfig struct {
	Dir string `env:"STATIC_DIR" env-default:"static"`
}

type Config struct {
	AdminDbConfig AdminDbConfig
	AppConfig     app.AppConfig
	JwtConfig     JwtConfig
	StaticConfig  StaticConfig
}

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, nil)))

	loadEnvFile()

	config := Config{}
	cleanenv.ReadEnv(&config)

	server := app.DefaultApp()

	app.RoutesHealthz(server.R)
	app.RoutesHealthzReady(server.R)

	dbConfig := config.AdminDbConfig.toDbConfig()
	pool, err := dbutils.NewDbPool(context.Background(), dbConfig)
	if err != nil {
		slog.Error("Failed creating dbpool", "db", dbConfig.Database, "host", dbConfig.Host, "port", dbConfig.Port, "user", dbConfig.User)
		os.Exit(-1)
	}

	iamRepo := iam.NewPostgresIamRepository(pool)
	iamService := iam.NewIamService(iamRepo)
	iamHandle := iam.NewHandle(iamService)

	roleRepo := role.NewPostgresRoleRepository(pool)
	roleService := role.NewRoleService(roleRepo)
	roleHandle := role.NewHandle(roleService)

	loginRepo := login.NewPostgresLoginRepository(pool)
	loginService := login.NewLoginService(loginRepo)

	jwtService := auth.NewJwtServiceOptions(
		config.JwtConfig.JwtSecret,
		auth.WithCookieHttpOnly(config.JwtConfig.CookieHttpOnly),
		auth.WithCookieSecure(config.JwtConfig.CookieSecure),
	)
	loginHandle := login.NewHandle(loginService, jwtService)

	tokenAuth := jwtauth.New("HS256", []byte(config.JwtConfig.JwtSecret), nil)

	server.R.Group(func(r chi.Router) {
		// Session and authorization middleware apply to every route in
		// this group; the rule table decides which paths actually
		// require a session or a role.
		r.Use(login.Verifier(tokenAuth))
		r.Use(login.SessionMiddleware)
		r.Use(policy.Middleware(policy.DefaultRules()))

		r.Post("/login", loginHandle.PostLogin)
		r.Post("/logout", loginHandle.PostLogout)

		iamHandle.RegisterRoutes(r)
		roleHandle.RegisterRoutes(r)

		registerStatic(r, config.StaticConfig.Dir)
	})

	server.Run()
}

func registerStatic(r chi.Router, dir string) {
	fs := http.FileServer(http.Dir(dir))
	r.Get("/", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/login.html", http.StatusFound)
	})
	r.Handle("/*", fs)
}

func loadEnvFile() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		slog.Info("No env file loaded", "file", envFile)
	}
}
