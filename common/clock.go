package common

import "time"

type Clock interface {
	NowUnix() int64
	After(d time.Duration) <-chan time.Time
}

type DefaultClock struct{}

func (*DefaultClock) NowUnix() int64 {
	now := time.Now()
	return now.Unix()
}

func (*DefaultClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}
