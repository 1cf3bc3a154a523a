package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/stake-plus/suggestions/src/data"
	"github.com/stake-plus/suggestions/src/suggestion"
	"gorm.io/gorm"
)

// NamespaceConfig wires one numbering partition to its Discord surface.
type NamespaceConfig struct {
	GuildID         string
	ChannelID       string
	ModeratorRoleID string
	// Offset is the configured starting number; the first suggestion in
	// an empty namespace is numbered exactly Offset.
	Offset int64
}

type Config struct {
	Token           string
	MySQLDSN        string
	RedisURL        string
	Port            string
	JWTSecret       string
	ModeratorToken  string
	CooldownSeconds int
	Namespaces      map[suggestion.Namespace]NamespaceConfig
}

// Load reads configuration from the settings table with environment
// fallbacks (settings win so namespace wiring can change at runtime).
func Load(db *gorm.DB) Config {
	if err := data.LoadSettings(db); err != nil {
		log.Printf("config: failed to load settings: %v", err)
	}

	cooldown := 30
	if v := setting("suggest_cooldown_seconds", "SUGGEST_COOLDOWN_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cooldown = n
		}
	}

	return Config{
		Token:           setting("discord_token", "DISCORD_TOKEN"),
		MySQLDSN:        data.GetMySQLDSN(),
		RedisURL:        getenv("REDIS_URL", "redis://127.0.0.1:6379/0"),
		Port:            getenv("PORT", "8080"),
		JWTSecret:       setting("jwt_secret", "JWT_SECRET"),
		ModeratorToken:  setting("moderator_token", "MODERATOR_TOKEN"),
		CooldownSeconds: cooldown,
		Namespaces: map[suggestion.Namespace]NamespaceConfig{
			suggestion.NamespaceMain:  loadNamespace("main"),
			suggestion.NamespaceStaff: loadNamespace("staff"),
		},
	}
}

func loadNamespace(name string) NamespaceConfig {
	env := strings.ToUpper(name)

	var offset int64
	if v := setting(name+"_number_offset", env+"_NUMBER_OFFSET"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			offset = n
		}
	}

	return NamespaceConfig{
		GuildID:         setting(name+"_guild_id", env+"_GUILD_ID"),
		ChannelID:       setting(name+"_suggest_channel", env+"_SUGGEST_CHANNEL"),
		ModeratorRoleID: setting(name+"_moderator_role", env+"_MODERATOR_ROLE"),
		Offset:          offset,
	}
}

// NamespaceForGuild maps a guild to its namespace.
func (c Config) NamespaceForGuild(guildID string) (suggestion.Namespace, bool) {
	for ns, nc := range c.Namespaces {
		if nc.GuildID != "" && nc.GuildID == guildID {
			return ns, true
		}
	}
	return "", false
}

// Offsets returns the per-namespace numbering offsets for the allocator.
func (c Config) Offsets() map[suggestion.Namespace]int64 {
	offsets := make(map[suggestion.Namespace]int64, len(c.Namespaces))
	for ns, nc := range c.Namespaces {
		offsets[ns] = nc.Offset
	}
	return offsets
}

func setting(name, envKey string) string {
	if v := data.GetSetting(name); v != "" {
		return v
	}
	return os.Getenv(envKey)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
