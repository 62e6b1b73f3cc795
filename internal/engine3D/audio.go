package engine3D

import (
	"fmt"

	"winterroom/internal/utils"

	rl "github.com/gen2brain/raylib-go/raylib"
)

type AudioStream struct {
	path   string
	music  rl.Music
	active bool
}

// AudioManager plays looping music streams, such as the fireplace crackle.
type AudioManager struct {
	streams []*AudioStream
}

func NewAudioManager() *AudioManager {
	if !utils.SilentMode && !rl.IsAudioDeviceReady() {
		rl.InitAudioDevice()
	}
	return &AudioManager{
		streams: make([]*AudioStream, 0),
	}
}

// Play starts streaming an asset. It is a no-op in silent mode.
func (am *AudioManager) Play(name string, volume float32, loop bool) error {
	if utils.SilentMode {
		return nil
	}
	if !rl.IsAudioDeviceReady() {
		return fmt.Errorf("play %s: no audio device", name)
	}

	path := utils.ResolveAssetPath(name)
	music := rl.LoadMusicStream(path)
	if !rl.IsMusicValid(music) {
		return fmt.Errorf("play %s: failed to load music stream", path)
	}

	music.Looping = loop
	rl.SetMusicVolume(music, volume)
	rl.PlayMusicStream(music)

	am.streams = append(am.streams, &AudioStream{
		path:   path,
		music:  music,
		active: true,
	})

	utils.Info("Raylib: Playing %s (Vol: %.2f)", path, volume)
	return nil
}

// Update refills the stream buffers. Call it once per frame.
func (am *AudioManager) Update() {
	for _, stream := range am.streams {
		if stream.active {
			rl.UpdateMusicStream(stream.music)
		}
	}
}

// Playing lists the paths of the active streams.
func (am *AudioManager) Playing() []string {
	var paths []string
	for _, stream := range am.streams {
		if stream.active {
			paths = append(paths, stream.path)
		}
	}
	return paths
}

func (am *AudioManager) Close() {
	for _, stream := range am.streams {
		if stream.active {
			rl.StopMusicStream(stream.music)
			rl.UnloadMusicStream(stream.music)
			stream.active = false
		}
	}
	if rl.IsAudioDeviceReady() {
		rl.CloseAudioDevice()
	}
}
