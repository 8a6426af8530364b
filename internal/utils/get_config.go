package utils

import (
	"log"
	"os"
	"strconv"

	"gopkg.in/yaml.v2"
)

type Config struct {
	// Database configuration
	DBPath string `yaml:"DB_PATH"`

	// HTTP shell configuration
	AppPort string `yaml:"APP_PORT"`

	// Notification scheduler configuration
	NotificationDays     int `yaml:"NOTIFICATION_DAYS"`
	NotificationInterval int `yaml:"NOTIFICATION_INTERVAL_MINUTES"`
}

var config = Config{
	DBPath:               "freshtrack.db",
	AppPort:              "8080",
	NotificationDays:     3,
	NotificationInterval: 60,
}

func LoadConfig() {
	file, err := os.ReadFile("config.yaml")
	if err != nil {
		log.Printf("Error reading YAML file: %s\n", err)
		return
	}

	err = yaml.Unmarshal(file, &config)
	if err != nil {
		log.Printf("Error parsing YAML file: %s\n", err)
		return
	}
}

func GetConfig(key string) string {
	switch key {
	case "DB_PATH":
		return config.DBPath
	case "APP_PORT":
		return config.AppPort
	case "NOTIFICATION_DAYS":
		return strconv.Itoa(config.NotificationDays)
	case "NOTIFICATION_INTERVAL_MINUTES":
		return strconv.Itoa(config.NotificationInterval)
	default:
		return ""
	}
}

func GetConfigInt(key string) int {
	v, err := strconv.Atoi(GetConfig(key))
	if err != nil {
		return 0
	}
	return v
}
