package config

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config agrupa la configuración de la aplicación (lectura vía Viper desde
// env y opcionalmente archivo).
type Config struct {
	App    AppConfig
	DB     DBConfig
	JWT    JWTConfig
	HTTP   HTTPConfig
	Sync   SyncConfig
	Backup BackupConfig
	Auth   AuthConfig
}

// AppConfig configuración general de la aplicación.
type AppConfig struct {
	Env  string // development, staging, production
	Name string
}

// DBConfig configuración de PostgreSQL.
// Si DatabaseURL no está vacío, se usa como connection string completo.
type DBConfig struct {
	DatabaseURL string
	Host        string
	Port        int
	User        string
	Password    string
	DBName      string
	SSLMode     string
}

// ConnectionString devuelve el DSN a usar: DATABASE_URL si está definido,
// si no el construido con DSN().
func (c DBConfig) ConnectionString() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return c.DSN()
}

// DSN devuelve el connection string con URL encoding para caracteres
// especiales en la contraseña.
func (c DBConfig) DSN() string {
	u := &url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
		Path:     "/" + c.DBName,
		RawQuery: fmt.Sprintf("sslmode=%s", c.SSLMode),
	}
	return u.String()
}

// JWTConfig configuración de JWT.
type JWTConfig struct {
	Secret     string
	Expiration int // minutos
	Issuer     string
}

// HTTPConfig configuración del servidor HTTP.
type HTTPConfig struct {
	Host string
	Port int
}

// Addr devuelve la dirección de escucha (host:port).
func (c HTTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Límites del intervalo de sincronización en segundos.
const (
	SyncIntervalMin     = 10
	SyncIntervalMax     = 120
	SyncIntervalDefault = 30
)

// SyncConfig configuración del planificador de sincronización.
type SyncConfig struct {
	IntervalSeconds    int // acotado a [SyncIntervalMin, SyncIntervalMax]
	JoinTimeoutSeconds int // espera máxima de Stop sobre la pasada en curso
	OpTimeoutSeconds   int // tope por operación contra el almacén
}

// Interval devuelve el intervalo ya acotado al dominio válido.
func (c SyncConfig) Interval() time.Duration {
	s := c.IntervalSeconds
	if s < SyncIntervalMin {
		s = SyncIntervalMin
	}
	if s > SyncIntervalMax {
		s = SyncIntervalMax
	}
	return time.Duration(s) * time.Second
}

// JoinTimeout espera máxima al apagar el planificador.
func (c SyncConfig) JoinTimeout() time.Duration {
	return time.Duration(c.JoinTimeoutSeconds) * time.Second
}

// OpTimeout tope por operación contra el almacén; cero desactiva.
func (c SyncConfig) OpTimeout() time.Duration {
	return time.Duration(c.OpTimeoutSeconds) * time.Second
}

// BackupConfig configuración del colaborador de archivado.
type BackupConfig struct {
	Dir string
}

// AuthConfig credenciales del responsable del corte. PasswordHash es un hash
// bcrypt: nunca se configura la contraseña en claro.
type AuthConfig struct {
	AdminUser    string
	PasswordHash string
}

// Load lee la configuración desde variables de entorno (y opcionalmente
// desde archivo). Las env vars tienen prioridad.
func Load() (*Config, error) {
	v := viper.New()

	// Opcional: archivo de configuración (.env o config.env)
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.SetConfigName("config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	_ = v.ReadInConfig() // ignoramos error si no existe

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	cfg := &Config{
		App: AppConfig{
			Env:  getString(v, "APP_ENV", "development"),
			Name: getString(v, "APP_NAME", "sisinventario"),
		},
		DB: DBConfig{
			DatabaseURL: getString(v, "DATABASE_URL", ""),
			Host:        getString(v, "DB_HOST", "localhost"),
			Port:        getInt(v, "DB_PORT", 5432),
			User:        getString(v, "DB_USER", "postgres"),
			Password:    getString(v, "DB_PASSWORD", ""),
			DBName:      getString(v, "DB_NAME", "sisinventario"),
			SSLMode:     getString(v, "DB_SSLMODE", "disable"),
		},
		JWT: JWTConfig{
			Secret:     getString(v, "JWT_SECRET", ""),
			Expiration: getInt(v, "JWT_EXPIRATION_MINUTES", 480),
			Issuer:     getString(v, "JWT_ISSUER", "sisinventario"),
		},
		HTTP: HTTPConfig{
			Host: getString(v, "HTTP_HOST", "0.0.0.0"),
			Port: getInt(v, "HTTP_PORT", 8080),
		},
		Sync: SyncConfig{
			IntervalSeconds:    getInt(v, "SYNC_INTERVAL_SECONDS", SyncIntervalDefault),
			JoinTimeoutSeconds: getInt(v, "SYNC_JOIN_TIMEOUT_SECONDS", 2),
			OpTimeoutSeconds:   getInt(v, "STORE_OP_TIMEOUT_SECONDS", 5),
		},
		Backup: BackupConfig{
			Dir: getString(v, "BACKUP_DIR", "./backups"),
		},
		Auth: AuthConfig{
			AdminUser:    getString(v, "AUTH_ADMIN_USER", "admin"),
			PasswordHash: getString(v, "AUTH_ADMIN_PASSWORD_HASH", ""),
		},
	}

	return cfg, nil
}

func getString(v *viper.Viper, key, def string) string {
	if v.IsSet(key) {
		return v.GetString(key)
	}
	return def
}

func getInt(v *viper.Viper, key string, def int) int {
	if v.IsSet(key) {
		switch v.Get(key).(type) {
		case int:
			return v.GetInt(key)
		case string:
			n, _ := strconv.Atoi(v.GetString(key))
			return n
		default:
			return v.GetInt(key)
		}
	}
	return def
}
