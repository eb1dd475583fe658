package auth

import "fmt"

const (
	// ConfigFile is the credentials file name under the home directory
	ConfigFile = ".githubconfig"
	// ConfigSection is the credentials section name
	ConfigSection = "github"

	KeyUserLogin = "user_login"
	KeyUserPass  = "user_pass"
	KeyUserToken = "user_token"
	KeyUserFeed  = "user_feed"
)

// Credentials is the stored account state. FeedURL is a pre-signed url
// for the user's activity feed, only available to password-based
// sessions.
type Credentials struct {
	Login    string
	Token    string
	Password string
	FeedURL  string
}

// Validate checks that the credentials are usable: a login plus at
// least one of token or password
func (c Credentials) Validate() error {
	if c.Login == "" {
		return fmt.Errorf("credentials missing login")
	}
	if c.Token == "" && c.Password == "" {
		return fmt.Errorf("credentials for %s have neither token nor password", c.Login)
	}
	return nil
}

// values serializes the credentials as config section values, omitting
// unset keys
func (c Credentials) values() map[string]string {
	values := map[string]string{
		KeyUserLogin: c.Login,
	}
	if c.Token != "" {
		values[KeyUserToken] = c.Token
	}
	if c.Password != "" {
		values[KeyUserPass] = c.Password
	}
	if c.FeedURL != "" {
		values[KeyUserFeed] = c.FeedURL
	}
	return values
}

// credentialsFrom rebuilds credentials from config section values
func credentialsFrom(values map[string]string) Credentials {
	return Credentials{
		Login:    values[KeyUserLogin],
		Token:    values[KeyUserToken],
		Password: values[KeyUserPass],
		FeedURL:  values[KeyUserFeed],
	}
}
