package config

import (
	"fmt"
	"strings"

	"github.com/shouni/netarmor/securenet"
)

// parseCommaSeparatedList はカンマ区切りの文字列を空要素を除いたスライスに変換します。
func parseCommaSeparatedList(raw string) []string {
	var res []string
	for _, s := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(s); trimmed != "" {
			res = append(res, trimmed)
		}
	}
	return res
}

// --- バリデーション ---

// ValidateEssentialConfig はアプリケーション実行に不可欠な設定を検証します。
func ValidateEssentialConfig(cfg *Config) error {
	if cfg.Port == "" {
		return fmt.Errorf("configuration error: PORT is empty")
	}

	// API Key を載せて送信するため、上流は HTTPS (または localhost) に限定します。
	if !IsSecureURL(cfg.GeminiBaseURL) {
		return fmt.Errorf("security error: GEMINI_BASE_URL ('%s') must be HTTPS", cfg.GeminiBaseURL)
	}

	if cfg.FetchTimeout <= 0 {
		return fmt.Errorf("configuration error: FETCH_TIMEOUT must be positive (got %s)", cfg.FetchTimeout)
	}
	if cfg.FetchMaxBytes <= 0 || cfg.MaxBodyBytes <= 0 {
		return fmt.Errorf("configuration error: FETCH_MAX_BYTES and MAX_BODY_BYTES must be positive")
	}
	if len(cfg.CORSAllowedOrigins) == 0 {
		return fmt.Errorf("configuration error: CORS_ALLOWED_ORIGINS is empty")
	}

	return nil
}

// IsSecureURL は指定された URL が HTTPS または localhost であるか判定します。
func IsSecureURL(rawURL string) bool {
	return securenet.IsSecureServiceURL(rawURL)
}
