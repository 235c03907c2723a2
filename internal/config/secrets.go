package config

import (
	"fmt"
	"os"
	"strings"
)

// readSecret читает секрет из Docker Secrets (/run/secrets/<name>).
// Для локальной разработки допускается fallback на переменную окружения
// с именем секрета в верхнем регистре.
func readSecret(secretName string) (string, error) {
	filePath := fmt.Sprintf("/run/secrets/%s", secretName)
	secretBytes, err := os.ReadFile(filePath)
	if err == nil {
		secret := strings.TrimSpace(string(secretBytes))
		if secret == "" {
			return "", fmt.Errorf("secret file %s is empty", filePath)
		}
		return secret, nil
	}

	if v := strings.TrimSpace(os.Getenv(strings.ToUpper(secretName))); v != "" {
		return v, nil
	}
	return "", fmt.Errorf("failed to read secret %s: %w", secretName, err)
}
