package timing

import "time"

var (
	dt         float32 = 0.01
	frameStart time.Time
	startTime  time.Time

	//fps calculator vars
	dtAccum                  float32 = 1
	lastElapsedTime          uint64  = 0
	framesSinceLastFPSUpdate uint64  = 0
	avgFps                   float32 = 1
)

func Init() {
	startTime = time.Now()
	frameStart = startTime
}

func FrameStarted() {
	frameStart = time.Now()
}

func FrameEnded() {

	elapsed := time.Since(frameStart)
	dt = float32(elapsed.Seconds())

	// Average FPS over the last second
	framesSinceLastFPSUpdate++
	dtAccum += dt
	if dtAccum >= 1 {

		avgFps = float32(framesSinceLastFPSUpdate) / dtAccum
		lastElapsedTime = uint64(ElapsedTime().Milliseconds())

		dtAccum = 0
		framesSinceLastFPSUpdate = 0
	}
}

// DT is the time taken by the last frame in seconds
func DT() float32 {
	return dt
}

func GetAvgFPS() float32 {
	return avgFps
}

// ElapsedTime is the time since Init
func ElapsedTime() time.Duration {
	return time.Since(startTime)
}

// LastFPSUpdateMs is the ElapsedTime, in milliseconds, of the last GetAvgFPS update
func LastFPSUpdateMs() uint64 {
	return lastElapsedTime
}
