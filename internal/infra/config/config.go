// internal/infra/config/config.go
package config

import "os"

// Config はアプリケーション全体の環境変数設定を保持します。
type Config struct {
	Port                     string
	FirestoreProjectID       string
	FirestoreCredentialsFile string
	GCSBucket                string
	GCPCreds                 string

	// Firebase Auth 用のプロジェクトID（federated sign-in）
	FirebaseProjectID string

	// セッション署名鍵:
	// SESSION_SECRET が設定されていればそれを直接使う。
	// 空の場合は Secret Manager から SESSION_SECRET_NAME を読む。
	SessionSecret     string
	SessionSecretName string

	// SendGrid（レシートメール）。未設定ならメール送信はスキップされる。
	SendGridAPIKey string
	MailFrom       string
	MailFromName   string
}

// Load は環境変数を読み込み Config を返します。
func Load() *Config {
	// ベースとなる GCP プロジェクト ID
	defaultProject := getenvDefault("GCP_PROJECT_ID", "storefront-development")

	cfg := &Config{
		Port:                     getenvDefault("PORT", "8080"),
		FirestoreProjectID:       getenvDefault("FIRESTORE_PROJECT_ID", defaultProject),
		FirestoreCredentialsFile: os.Getenv("FIRESTORE_CREDENTIALS_FILE"),
		GCSBucket:                os.Getenv("GCS_BUCKET"),
		GCPCreds:                 os.Getenv("GOOGLE_APPLICATION_CREDENTIALS"),

		// FIREBASE_PROJECT_ID が未指定なら GCP のデフォルトを使う
		FirebaseProjectID: getenvDefault("FIREBASE_PROJECT_ID", defaultProject),

		SessionSecret:     os.Getenv("SESSION_SECRET"),
		SessionSecretName: getenvDefault("SESSION_SECRET_NAME", "storefront-session-key"),

		// メール関連。SENDGRID_API_KEY が空ならレシート送信は無効。
		SendGridAPIKey: os.Getenv("SENDGRID_API_KEY"),
		MailFrom:       os.Getenv("MAIL_FROM"),
		MailFromName:   getenvDefault("MAIL_FROM_NAME", "Storefront"),
	}

	return cfg
}

// GetFirestoreProjectID は Firestore/GCP プロジェクト ID を返します。
func (c *Config) GetFirestoreProjectID() string {
	return c.FirestoreProjectID
}

// Firebase 用の ProjectID を返すヘルパー
func (c *Config) GetFirebaseProjectID() string {
	return c.FirebaseProjectID
}

// MailEnabled はレシートメール送信が構成済みかを返します。
func (c *Config) MailEnabled() bool {
	return c.SendGridAPIKey != "" && c.MailFrom != ""
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
