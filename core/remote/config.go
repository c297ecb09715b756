package remote

// Config holds configuration for the remote campaign service client.
type Config struct {
	// BaseURL is the root URL of the campaign service API.
	BaseURL string `mapstructure:"base_url" default:"https://api.example-campaigns.app/v1"`
	// Token is the bearer token used to authenticate requests.
	Token string `mapstructure:"token" default:""`
	// CampaignID is the campaign all operations are scoped to.
	CampaignID string `mapstructure:"campaign_id" default:""`
	// TimeoutSeconds is the per-request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
