package config

import (
	"os"
	"strconv"
)

type Config struct {
	Gemini   GeminiConfig
	OpenAI   OpenAIConfig
	Gallery  GalleryConfig
	Uploads  UploadsConfig
	Detector DetectorConfig
	Web      WebConfig
}

type GeminiConfig struct {
	APIKey string
}

type OpenAIConfig struct {
	Token string
}

type GalleryConfig struct {
	Dir string // directory with reference face images
}

type UploadsConfig struct {
	Dir string // directory where uploaded and webcam images are stored
}

type DetectorConfig struct {
	CascadePath string  // path to the binary frontal-face cascade file
	ScaleFactor float64 // detection window growth per scale step (default 1.1)
	ShiftFactor float64 // detection window shift as fraction of size (default 0.1)
	MinSize     int     // smallest detection window in pixels (default 20)
	MaxSize     int     // largest detection window in pixels (default 1000)
	MinQuality  float64 // minimum cascade quality score to keep a detection (default 5.0)
}

type WebConfig struct {
	Port int
	Host string
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envFloat reads an environment variable and parses it as a positive float.
// Returns the default value if the env var is unset, empty, or invalid.
func envFloat(key string, defaultVal float64) float64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f > 0 {
		return f
	}
	return defaultVal
}

// envString reads an environment variable with a fallback default.
func envString(key, defaultVal string) string {
	if s := os.Getenv(key); s != "" {
		return s
	}
	return defaultVal
}

func Load() *Config {
	return &Config{
		Gemini: GeminiConfig{
			APIKey: os.Getenv("GEMINI_API_KEY"),
		},
		OpenAI: OpenAIConfig{
			Token: os.Getenv("OPENAI_TOKEN"),
		},
		Gallery: GalleryConfig{
			Dir: envString("GALLERY_DIR", "face_data/known_faces"),
		},
		Uploads: UploadsConfig{
			Dir: envString("UPLOAD_DIR", "face_data/uploads"),
		},
		Detector: DetectorConfig{
			CascadePath: envString("FACE_CASCADE_PATH", "cascade/facefinder"),
			ScaleFactor: envFloat("DETECT_SCALE_FACTOR", 1.1),
			ShiftFactor: envFloat("DETECT_SHIFT_FACTOR", 0.1),
			MinSize:     envInt("DETECT_MIN_SIZE", 20),
			MaxSize:     envInt("DETECT_MAX_SIZE", 1000),
			MinQuality:  envFloat("DETECT_MIN_QUALITY", 5.0),
		},
		Web: WebConfig{
			Port: envInt("WEB_PORT", 8080),
			Host: envString("WEB_HOST", "0.0.0.0"),
		},
	}
}

// NarrativeEnabled reports whether any narrative provider credential is configured.
func (c *Config) NarrativeEnabled() bool {
	return c.Gemini.APIKey != "" || c.OpenAI.Token != ""
}
