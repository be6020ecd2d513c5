// SPDX-License-Identifier: EPL-2.0

package audio

// Remixer changes the channel count of a Source.
//
// Downmixing averages every source channel that folds onto an output
// channel (source channel k lands on output k mod N), so stereo to mono is
// (L+R)/2. Upmixing replicates source channel j mod M into output j, so a
// mono source becomes identical left and right.
type Remixer struct {
	src  Source
	in   int
	out  int
	tmp  []float32
	keep int       // samples of an incomplete frame held at the front of tmp
	gain []float32 // 1 / number of source channels folded into each output
}

func NewRemixer(src Source, channels int) *Remixer {
	m := &Remixer{
		src: src,
		in:  src.Channels(),
		out: channels,
	}

	if m.in > m.out && m.out > 0 {
		m.gain = make([]float32, m.out)
		counts := make([]int, m.out)
		for k := range m.in {
			counts[k%m.out]++
		}
		for j, n := range counts {
			m.gain[j] = 1 / float32(n)
		}
	}

	return m
}

// NewMonoMixer folds all channels of src down to one.
func NewMonoMixer(src Source) *Remixer { return NewRemixer(src, 1) }

func (m *Remixer) SampleRate() int { return m.src.SampleRate() }
func (m *Remixer) Channels() int   { return m.out }
func (m *Remixer) Close() error    { return m.src.Close() }

func (m *Remixer) ReadSamples(dst []float32) (int, error) {
	if m.in <= 0 || m.out <= 0 {
		return 0, ErrNoChannels
	}
	if len(dst)%m.out != 0 {
		return 0, ErrInvalidDstSize
	}
	if m.in == m.out {
		return m.src.ReadSamples(dst)
	}

	frames := len(dst) / m.out
	if frames == 0 {
		return 0, nil
	}

	need := frames * m.in
	if cap(m.tmp) < need {
		grown := make([]float32, need)
		copy(grown, m.tmp[:m.keep])
		m.tmp = grown
	}
	m.tmp = m.tmp[:need]

	n, err := m.src.ReadSamples(m.tmp[m.keep:])
	n += m.keep
	got := n / m.in

	if m.in > m.out {
		m.fold(dst[:got*m.out], m.tmp[:got*m.in])
	} else {
		m.spread(dst[:got*m.out], m.tmp[:got*m.in])
	}

	m.keep = copy(m.tmp, m.tmp[got*m.in:n])

	return got * m.out, err
}

func (m *Remixer) fold(dst, src []float32) {
	clear(dst)

	if m.out == 1 {
		for f := range dst {
			var sum float32
			for _, v := range src[f*m.in : (f+1)*m.in] {
				sum += v
			}
			dst[f] = sum * m.gain[0]
		}
		return
	}

	for f := 0; f < len(src)/m.in; f++ {
		frame := src[f*m.in : (f+1)*m.in]
		out := dst[f*m.out : (f+1)*m.out]
		for k, v := range frame {
			out[k%m.out] += v
		}
		for j := range out {
			out[j] *= m.gain[j]
		}
	}
}

func (m *Remixer) spread(dst, src []float32) {
	for f := 0; f < len(src)/m.in; f++ {
		frame := src[f*m.in : (f+1)*m.in]
		out := dst[f*m.out : (f+1)*m.out]
		for j := range out {
			out[j] = frame[j%m.in]
		}
	}
}
