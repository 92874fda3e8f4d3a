// Package env sets up link endpoints from configuration and environment.
package env

import (
	"os"

	"github.com/denisbrodbeck/machineid"
	"github.com/golang/glog"
)

// AppID scopes the machine ID so it isn't exposed as is.
const AppID = "statuspanel"

// MachineID retrieves the unique ID identifying the machine.
// It falls back to the host name where no machine ID is available.
func MachineID() string {
	id, err := machineid.ProtectedID(AppID)
	if err == nil {
		return id
	}
	glog.Warningf("machine ID unavailable: %v", err)
	host, err := os.Hostname()
	if err != nil || host == "" {
		return "unknown"
	}
	return host
}
