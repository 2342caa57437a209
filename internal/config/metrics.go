package config

// MetricsConfig controls telemetry export settings.
type MetricsConfig struct {
	Enabled      bool   `envconfig:"ENABLED" default:"true"`
	Port         string `envconfig:"LISTEN_PORT" default:"9090" validate:"required_if=Enabled true"`
	OtlpEndpoint string `envconfig:"OTLP_ENDPOINT"`
	ServiceName  string `envconfig:"SERVICE_NAME" default:"nba-playoff-efficiency"`
	OtlpInsecure bool   `envconfig:"OTLP_INSECURE" default:"true"`
}

// ServiceNameOrDefault falls back to the binary's service name.
func (m MetricsConfig) ServiceNameOrDefault() string {
	if m.ServiceName == "" {
		return serviceName
	}
	return m.ServiceName
}
