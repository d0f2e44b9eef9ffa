package utils

import (
	"encoding/json"
	"io"
	"log"
	"net"
	"net/http"
	"os"
	"regexp"
	"strconv"
	"strings"

	"shardvault/shared/endpoints"
)

// GetEnvVar is the primary method for reading variables from the environment.
// Note that variables are unset after they are retrieved, so the value needs
// to be stored in some way if it needs to be accessed more than once.
func GetEnvVar(key string, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = fallback
	}

	err := os.Unsetenv(key)
	if err != nil {
		log.Fatalf("Failed to unset %s key: %v\n", key, err)
	}

	return strings.TrimSpace(value)
}

// GetEnvVarInt retrieves a string value from the environment and converts it
// into an integer.
func GetEnvVarInt(key string, fallback int) int {
	value := GetEnvVar(key, strconv.Itoa(fallback))
	if value == "" {
		return fallback
	}

	num, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("WARNING: Value for %s is not a valid number, using fallback...\n", key)
		return fallback
	}

	return num
}

// GetEnvVarBool retrieves a value from the environment and interprets it as a
// bool value -- 0/n/false == false, 1/y/true == true
func GetEnvVarBool(key string, fallback bool) bool {
	value := GetEnvVar(key, "")
	value = strings.ToLower(value)

	if value == "" {
		return fallback
	} else if value == "0" || value == "n" || value == "false" {
		return false
	} else if value == "1" || value == "y" || value == "true" {
		return true
	}

	return fallback
}

func LogStruct(v any) {
	s, _ := json.MarshalIndent(v, "", "\t")
	log.Println(string(s))
}

func IsAnyStringMissing(s ...string) bool {
	for _, str := range s {
		if len(str) == 0 {
			return true
		}
	}

	return false
}

func Contains(items []string, target string) bool {
	for _, item := range items {
		if item == target {
			return true
		}
	}
	return false
}

func ParseSizeString(str string) int64 {
	pattern := regexp.MustCompile(`^(\d+)([a-zA-Z]+)$`)
	matches := pattern.FindStringSubmatch(str)

	if len(matches) == 3 {
		numStr := matches[1]
		num, err := strconv.Atoi(numStr)
		if err != nil {
			log.Printf("Error converting number: %v\n", err)
			return 0
		}

		i64num := int64(num)
		letters := strings.ToUpper(matches[2])

		switch letters[0] {
		case 'G': // Gigabyte
			return int64(1024) * 1024 * 1024 * i64num
		case 'M': // Megabyte
			return int64(1024) * 1024 * i64num
		case 'K': // Kilobyte
			return int64(1024) * i64num
		default:
			return i64num
		}
	} else {
		log.Printf("No match found for size string: %s\n", str)
	}

	return 0
}

// LimitedJSONReader reads the request body, limited to 12288 bytes. This is
// big enough for every control request made to the shardvault API.
func LimitedJSONReader(w http.ResponseWriter, body io.ReadCloser) *json.Decoder {
	return limitedJSONReader(w, body, 12288)
}

// SizedJSONReader is LimitedJSONReader with a caller-chosen bound, used for
// bodies carrying shard content or asset data. Callers should pad the bound
// to account for base64 and JSON field overhead.
func SizedJSONReader(w http.ResponseWriter, body io.ReadCloser, limit int64) *json.Decoder {
	return limitedJSONReader(w, body, int(limit))
}

func limitedJSONReader(w http.ResponseWriter, body io.ReadCloser, limit int) *json.Decoder {
	limitedBody := http.MaxBytesReader(w, body, int64(limit))
	return json.NewDecoder(limitedBody)
}

func GetTrailingURLSegments(path string, strip ...endpoints.Endpoint) []string {
	if strings.HasSuffix(path, "/") {
		path = path[0 : len(path)-1]
	}

	for _, endpoint := range strip {
		endpointBase := strings.ReplaceAll(string(endpoint), "/*", "")
		path = strings.Replace(path, endpointBase, "", 1)
		if strings.HasSuffix(path, string(endpoint)) {
			// There is no trailing segment, it ends with the base endpoint
			return []string{}
		}
	}

	path = strings.TrimPrefix(path, "/")
	return strings.Split(path, "/")
}

func GetReqSource(req *http.Request) (string, error) {
	ip := req.Header.Get("X-Forwarded-For")

	if len(ip) == 0 {
		fallbackIP, _, err := net.SplitHostPort(req.RemoteAddr)
		if err != nil {
			return "", err
		}

		ip = fallbackIP
	}

	return ip, nil
}
