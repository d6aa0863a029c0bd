// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masks card data and credentials in production logs
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction switches the maskers on. Development keeps logs
	// readable.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	switch strings.ToUpper(os.Getenv("LOG_LEVEL")) {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	// Full card numbers in common 16-digit groupings. Last-four values
	// on their own are fine to log.
	cardRegex = regexp.MustCompile(`\b\d{4}[\s-]?\d{4}[\s-]?\d{4}[\s-]?\d{4}\b`)

	// Provider API keys (sk-... style) and bearer headers.
	apiKeyRegex = regexp.MustCompile(`\bsk-[A-Za-z0-9_-]{8,}\b`)
	bearerRegex = regexp.MustCompile(`Bearer\s+\S+`)

	// Credit limits and fees are not secrets, but portfolio totals are
	// personal; mask bare dollar amounts in production.
	amountRegex = regexp.MustCompile(`\$\d[\d,]*(\.\d{1,2})?`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks sensitive data in a log line when in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := cardRegex.ReplaceAllString(input, "****-****-****-****")
	result = apiKeyRegex.ReplaceAllString(result, "sk-***")
	result = bearerRegex.ReplaceAllString(result, "Bearer ***")
	result = amountRegex.ReplaceAllString(result, "$***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	return result
}

// MaskAPIKey always masks, regardless of environment.
func MaskAPIKey(key string) string {
	if len(key) <= 6 {
		return "***"
	}
	return key[:3] + "..." + key[len(key)-2:]
}

// MaskID shortens an identifier in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// LogCardAction logs a portfolio mutation without exposing card data.
func LogCardAction(action string, cardID string, cardName string) {
	log.Printf("[Cards] %s - Card: %s (%s)", action, MaskID(cardID), MaskString(cardName))
}

// LogImageFetch logs the outcome of an image lookup.
func LogImageFetch(url string, source string, reason string) {
	if reason == "" {
		SafeDebug("[Images] %s served from %s", url, source)
		return
	}
	SafeInfo("[Images] %s served placeholder (%s)", url, reason)
}

// LogChatTurn logs a chat exchange without the prompt or the key.
func LogChatTurn(model string, promptLen int, replyLen int) {
	SafeInfo("[Chat] model=%s prompt_chars=%d reply_chars=%d", model, promptLen, replyLen)
}

// GetEnvMode returns the current environment mode.
func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup logs the application boot banner.
func LogStartup(appName string, version string, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
