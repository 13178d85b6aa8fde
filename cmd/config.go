package cmd

type Config struct {
	HTTPPort               string
	DBHost                 string
	DBPort                 string
	DBUser                 string
	DBPassword             string
	DBName                 string
	DBSslMode              string
	RedisURL               string
	DsfBaseURL             string
	DsfAPIToken            string
	ProposalServiceURL     string
	LocationDirectoryURL   string
	NotificationWebhookURL string
	SchedulerTimezone      string
}
