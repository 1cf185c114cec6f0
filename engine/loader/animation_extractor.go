package loader

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-gltf/engine/document"
)

// AnimationTrack holds the keyframes of one channel.
// Values is flat with Components floats per output element; cubic spline
// tracks carry three elements per key (in-tangent, value, out-tangent).
type AnimationTrack struct {
	Node          int
	Path          document.PathType
	Interpolation document.Interpolation
	Times         []float32
	Values        []float32
	Components    int
}

// Keys returns the number of keyframes.
func (t *AnimationTrack) Keys() int {
	return len(t.Times)
}

// AnimationClip is an animation with its keyframes read from the buffers.
type AnimationClip struct {
	Name string
	// Duration is the last keyframe time across all tracks, in seconds.
	Duration float32
	Tracks   []AnimationTrack
}

// animationExtractor is the implementation of the AnimationExtractor interface.
type animationExtractor struct {
	asset  *Asset
	reader AccessorReader
}

// AnimationExtractor reads animation keyframes from a loaded asset.
type AnimationExtractor interface {
	// ExtractAnimation reads a single animation by index.
	// Channels without a target node are skipped.
	//
	// Parameters:
	//   - animIndex: the index of the animation to extract
	//
	// Returns:
	//   - *AnimationClip: the extracted clip
	//   - error: error if a channel references a bad sampler or accessor
	ExtractAnimation(animIndex int) (*AnimationClip, error)

	// ExtractAnimationsForSkin reads every animation with a channel targeting a joint of the skin.
	//
	// Parameters:
	//   - skinIndex: the index of the skin
	//
	// Returns:
	//   - []*AnimationClip: the relevant clips in document order
	//   - error: error if extraction fails
	ExtractAnimationsForSkin(skinIndex int) ([]*AnimationClip, error)

	// ExtractAllAnimations reads every animation of the document.
	//
	// Returns:
	//   - []*AnimationClip: one clip per animation
	//   - error: error if extraction fails
	ExtractAllAnimations() ([]*AnimationClip, error)
}

var _ AnimationExtractor = &animationExtractor{}

// NewAnimationExtractor creates an animation extractor for a loaded asset.
//
// Parameters:
//   - asset: the asset whose binary chunks back its embedded buffers
//
// Returns:
//   - AnimationExtractor: the animation extractor
func NewAnimationExtractor(asset *Asset) AnimationExtractor {
	return &animationExtractor{asset: asset, reader: NewAccessorReader(asset)}
}

func (e *animationExtractor) ExtractAnimation(animIndex int) (*AnimationClip, error) {
	doc := e.asset.Document
	if animIndex < 0 || animIndex >= len(doc.Animations) {
		return nil, fmt.Errorf("%w: animation index %d out of range", ErrAccessor, animIndex)
	}
	anim := &doc.Animations[animIndex]

	clip := &AnimationClip{Name: anim.Name}
	if clip.Name == "" {
		clip.Name = fmt.Sprintf("animation_%d", animIndex)
	}

	for i := range anim.Channels {
		ch := &anim.Channels[i]
		node, ok := ch.Node.Get()
		if !ok {
			continue
		}
		samplerIdx, ok := ch.Sampler.Get()
		if !ok || samplerIdx >= len(anim.Samplers) {
			return nil, fmt.Errorf("%w: animation %q channel %d: invalid sampler %s", ErrAccessor, clip.Name, i, ch.Sampler)
		}
		sampler := &anim.Samplers[samplerIdx]

		track, err := e.readTrack(sampler, ch.Path)
		if err != nil {
			return nil, fmt.Errorf("animation %q channel %d: %w", clip.Name, i, err)
		}
		track.Node = node
		if n := len(track.Times); n > 0 && track.Times[n-1] > clip.Duration {
			clip.Duration = track.Times[n-1]
		}
		clip.Tracks = append(clip.Tracks, *track)
	}
	return clip, nil
}

func (e *animationExtractor) ExtractAnimationsForSkin(skinIndex int) ([]*AnimationClip, error) {
	doc := e.asset.Document
	if skinIndex < 0 || skinIndex >= len(doc.Skins) {
		return nil, fmt.Errorf("%w: skin index %d out of range", ErrAccessor, skinIndex)
	}

	joints := make(map[int]bool, len(doc.Skins[skinIndex].Joints))
	for _, j := range doc.Skins[skinIndex].Joints {
		joints[int(j)] = true
	}

	var clips []*AnimationClip
	for animIdx := range doc.Animations {
		relevant := false
		for _, ch := range doc.Animations[animIdx].Channels {
			if node, ok := ch.Node.Get(); ok && joints[node] {
				relevant = true
				break
			}
		}
		if !relevant {
			continue
		}

		clip, err := e.ExtractAnimation(animIdx)
		if err != nil {
			return nil, err
		}
		clips = append(clips, clip)
	}
	return clips, nil
}

func (e *animationExtractor) ExtractAllAnimations() ([]*AnimationClip, error) {
	clips := make([]*AnimationClip, len(e.asset.Document.Animations))
	for i := range clips {
		clip, err := e.ExtractAnimation(i)
		if err != nil {
			return nil, err
		}
		clips[i] = clip
	}
	return clips, nil
}

func (e *animationExtractor) readTrack(sampler *document.AnimationSampler, path document.PathType) (*AnimationTrack, error) {
	input, ok := sampler.Input.Get()
	if !ok {
		return nil, fmt.Errorf("%w: sampler has no input accessor", ErrAccessor)
	}
	output, ok := sampler.Output.Get()
	if !ok {
		return nil, fmt.Errorf("%w: sampler has no output accessor", ErrAccessor)
	}

	times, err := e.reader.ReadScalar(input)
	if err != nil {
		return nil, fmt.Errorf("failed to read timestamps: %w", err)
	}
	track := &AnimationTrack{Path: path, Interpolation: sampler.Interpolation, Times: times}

	switch path {
	case document.PathTranslation, document.PathScale:
		values, err := e.reader.ReadVec3(output)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s values: %w", path, err)
		}
		track.Components = 3
		for _, v := range values {
			track.Values = append(track.Values, v[:]...)
		}
	case document.PathRotation:
		values, err := e.reader.ReadVec4(output)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s values: %w", path, err)
		}
		track.Components = 4
		for _, v := range values {
			track.Values = append(track.Values, v[:]...)
		}
	default:
		// morph weights: one scalar per target per element
		values, err := e.reader.ReadScalar(output)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s values: %w", path, err)
		}
		track.Components = 1
		track.Values = values
	}
	return track, nil
}
