// api/audit/model.go
package audit

import "time"

// Login attempt outcomes.
const (
	OutcomeSuccess = "success"
	OutcomeFailed  = "failed"
	OutcomeBlocked = "blocked"
)

// LoginHistory is an immutable audit record, one per login attempt. The
// system never mutates or deletes entries.
type LoginHistory struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	PrincipalID string    `json:"principal_id" gorm:"index"`
	Email       string    `json:"email"`
	IP          string    `json:"ip"`
	Outcome     string    `json:"outcome"`
	Timestamp   time.Time `json:"timestamp" gorm:"index"`

	// Geolocation metadata. LookupStatus is "success" or "fail"; a failed
	// lookup leaves the location fields at their zero placeholders.
	LookupStatus string  `json:"lookup_status"`
	Country      string  `json:"country,omitempty"`
	Region       string  `json:"region,omitempty"`
	City         string  `json:"city,omitempty"`
	Lat          float64 `json:"lat,omitempty"`
	Lon          float64 `json:"lon,omitempty"`
	Timezone     string  `json:"timezone,omitempty"`
	ISP          string  `json:"isp,omitempty"`
	Org          string  `json:"org,omitempty"`

	// Browser metadata parsed from the user agent.
	Browser        string `json:"browser,omitempty"`
	BrowserVersion string `json:"browser_version,omitempty"`
	OS             string `json:"os,omitempty"`
	Device         string `json:"device,omitempty"`

	ReferrerHost string `json:"referrer_host,omitempty"`
	ReferrerPath string `json:"referrer_path,omitempty"`
}
