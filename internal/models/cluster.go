package models

import (
	"fmt"
	"strconv"
	"strings"
)

// Cluster is the binary low/high salary grouping produced upstream
type Cluster int

const (
	ClusterLow  Cluster = 0
	ClusterHigh Cluster = 1
)

// Clusters lists every valid cluster in id order
var Clusters = []Cluster{ClusterLow, ClusterHigh}

// String returns the display label ("bajo" or "alto")
func (c Cluster) String() string {
	switch c {
	case ClusterLow:
		return "bajo"
	case ClusterHigh:
		return "alto"
	default:
		return fmt.Sprintf("cluster(%d)", int(c))
	}
}

// Valid reports whether c is one of the two known clusters
func (c Cluster) Valid() bool {
	return c == ClusterLow || c == ClusterHigh
}

// MarshalText encodes the cluster as its label so JSON and CSV output stay readable
func (c Cluster) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidClusterLabel, int(c))
	}
	return []byte(c.String()), nil
}

// UnmarshalText accepts any form ParseCluster understands
func (c *Cluster) UnmarshalText(text []byte) error {
	parsed, err := ParseCluster(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// RelabelCluster maps a numeric cluster id to its cluster. Ids other than 0 and 1
// are rejected with ErrInvalidClusterLabel.
func RelabelCluster(id int) (Cluster, error) {
	c := Cluster(id)
	if !c.Valid() {
		return 0, fmt.Errorf("%w: %d", ErrInvalidClusterLabel, id)
	}
	return c, nil
}

// ParseCluster reads a cluster from a CSV cell. Numeric ids ("0", "1", "1.0")
// and labels ("bajo", "alto", "low", "high") are accepted.
func ParseCluster(raw string) (Cluster, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	switch s {
	case "bajo", "low":
		return ClusterLow, nil
	case "alto", "high":
		return ClusterHigh, nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f != float64(int(f)) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidClusterLabel, raw)
	}
	return RelabelCluster(int(f))
}
