package config

type FirebaseConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	UsersCollection string `yaml:"users_collection"`
}

func (c *FirebaseConfig) Enabled() bool {
	return c != nil && c.CredentialsFile != ""
}

func loadFirebaseConfig() *FirebaseConfig {
	return &FirebaseConfig{
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		UsersCollection: getEnv("FIREBASE_USERS_COLLECTION", "users"),
	}
}
