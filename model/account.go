package model

import (
	"fmt"
	"strings"
)

// AccountService is a social login provider.
type AccountService string

const (
	AccountServiceLine AccountService = "line"
)

// ParseAccountService validates a provider name coming from the outside.
func ParseAccountService(s string) (AccountService, error) {
	switch AccountService(s) {
	case AccountServiceLine:
		return AccountServiceLine, nil
	}
	return "", fmt.Errorf("unknown account service %q", s)
}

// LogInServiceAndID binds a provider to its provider-assigned account id.
type LogInServiceAndID struct {
	Service   AccountService
	ServiceID string
}

// String is the storage key form, "service_serviceId".
func (l LogInServiceAndID) String() string {
	return string(l.Service) + "_" + l.ServiceID
}

// ParseLogInServiceAndID parses the storage key form back.
func ParseLogInServiceAndID(s string) (LogInServiceAndID, error) {
	idx := strings.Index(s, "_")
	if idx <= 0 || idx == len(s)-1 {
		return LogInServiceAndID{}, fmt.Errorf("malformed log in service id %q", s)
	}
	service, err := ParseAccountService(s[:idx])
	if err != nil {
		return LogInServiceAndID{}, err
	}
	return LogInServiceAndID{Service: service, ServiceID: s[idx+1:]}, nil
}
