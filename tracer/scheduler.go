package tracer

import "math"

// The BlockScheduler interface is implemented by all block scheduling algorithms.
type BlockScheduler interface {
	// Split a frame into blocks of variable height and assign them to the
	// workers using the statistics collected from the previous frame.
	//
	// The returned slice holds the block height for each worker; heights
	// are at least 1 and add up to frameH. Callers must ensure that
	// len(lastFrame) <= frameH.
	Schedule(lastFrame []WorkerStat, frameH uint32) []uint32
}

type naiveScheduler struct{}

// The naive scheduler splits the frame into blocks of equal height and
// ignores previous frame statistics.
func NaiveScheduler() BlockScheduler {
	return naiveScheduler{}
}

func (naiveScheduler) Schedule(lastFrame []WorkerStat, frameH uint32) []uint32 {
	return evenSplit(len(lastFrame), frameH)
}

// The perfect scheduler assumes that the volume of tracing work between two
// subsequent frames is approximately the same.
type perfectScheduler struct{}

// Create a new perfect scheduler instance.
func PerfectScheduler() BlockScheduler {
	return perfectScheduler{}
}

// If statistics for the previous frame are available the scheduler estimates
// the workload for worker w and frame i+1 as:
// w_i, f_i+1 = (blockH,w_i / time,w_i) / Σ(blockH_i / time,i)
//
// Otherwise the frame is split into blocks of equal height.
func (perfectScheduler) Schedule(lastFrame []WorkerStat, frameH uint32) []uint32 {
	var total float64 = 0.0
	for _, stat := range lastFrame {
		if stat.BlockH == 0 || stat.RenderTime <= 0 {
			return evenSplit(len(lastFrame), frameH)
		}
		total += float64(stat.BlockH) / float64(stat.RenderTime)
	}

	scaler := float64(frameH) / total
	assignment := make([]uint32, len(lastFrame))
	for idx, stat := range lastFrame {
		assignment[idx] = uint32(math.Max(1.0, math.Floor(float64(stat.BlockH)/float64(stat.RenderTime)*scaler)))
	}

	return fitRows(assignment, frameH)
}

// Split frameH rows into count blocks of equal height. Rows that cannot be
// evenly split are assigned to the first blocks.
func evenSplit(count int, frameH uint32) []uint32 {
	assignment := make([]uint32, count)
	if count == 0 {
		return assignment
	}

	rows, extra := frameH/uint32(count), frameH%uint32(count)
	for idx := range assignment {
		assignment[idx] = rows
		if uint32(idx) < extra {
			assignment[idx]++
		}
	}
	return assignment
}

// Adjust block heights so they add up to frameH. Missing rows are appended
// to the first block; excess rows are removed from the largest blocks.
func fitRows(assignment []uint32, frameH uint32) []uint32 {
	var scheduledRows uint32 = 0
	for _, rows := range assignment {
		scheduledRows += rows
	}

	if scheduledRows <= frameH {
		assignment[0] += frameH - scheduledRows
		return assignment
	}

	for ; scheduledRows > frameH; scheduledRows-- {
		largest := 0
		for idx, rows := range assignment {
			if rows > assignment[largest] {
				largest = idx
			}
		}
		assignment[largest]--
	}
	return assignment
}
