package configs

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

var (
	JWTSecret string

	OSSEndpoint        string
	OSSAccessKeyID     string
	OSSAccessKeySecret string
	OSSBucketName      string
)

// =======================
// ENV LOADER
// =======================
func LoadEnv() {
	if os.Getenv("RAILWAY_ENVIRONMENT") == "" {
		if err := godotenv.Load(); err != nil {
			log.Println("⚠️ Tidak menemukan .env file, menggunakan ENV dari sistem")
		} else {
			log.Println("✅ .env file berhasil dimuat!")
		}
	} else {
		log.Println("🚀 Running in Railway, menggunakan ENV dari sistem")
	}

	JWTSecret = GetEnv("JWT_SECRET")
	if JWTSecret == "" {
		log.Println("❌ JWT_SECRET belum diset!")
	}

	OSSEndpoint = GetEnv("OSS_ENDPOINT")
	OSSAccessKeyID = GetEnv("OSS_ACCESS_KEY_ID")
	OSSAccessKeySecret = GetEnv("OSS_ACCESS_KEY_SECRET")
	OSSBucketName = GetEnv("OSS_BUCKET_NAME")
	if OSSEndpoint == "" || OSSBucketName == "" {
		log.Println("⚠️ Konfigurasi OSS belum lengkap, fitur sertifikat butuh OSS_*")
	}
}

func GetEnv(key string) string {
	return strings.TrimSpace(os.Getenv(key))
}

// GetEnvOr mengembalikan fallback jika key kosong.
func GetEnvOr(key, fallback string) string {
	if v := GetEnv(key); v != "" {
		return v
	}
	return fallback
}
