// This file is part of Scalebench.
//
// Scalebench is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Scalebench is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Scalebench.  If not, see <https://www.gnu.org/licenses/>.

package sdlimgui

import (
	"fmt"
	"strings"
	"time"

	"github.com/inkyblackness/imgui-go/v4"

	"github.com/jetsetilly/scalebench/logger"
	"github.com/jetsetilly/scalebench/pipeline"
	"github.com/jetsetilly/scalebench/version"
)

const overlayTitle = "Scalebench"

// number of log entries shown in the overlay
const overlayLogEntries = 8

var (
	colorWarning  = imgui.Vec4{X: 1.0, Y: 0.6, Z: 0.2, W: 1.0}
	colorDisabled = imgui.Vec4{X: 0.5, Y: 0.5, Z: 0.5, W: 1.0}
	colorError    = imgui.Vec4{X: 1.0, Y: 0.3, Z: 0.3, W: 1.0}
)

// Render implements the pipeline.Overlay interface. The presentable surface
// is bound when it is called.
func (img *SdlImgui) Render(stats pipeline.FrameStats) {
	if img.screenshotPending {
		img.takeScreenshot()
	}

	now := time.Now()
	var delta float32
	if !img.lastFrame.IsZero() {
		delta = float32(now.Sub(img.lastFrame).Seconds())
	}
	img.lastFrame = now

	img.plt.newFrame(delta)
	imgui.NewFrame()

	if img.showOverlay {
		img.drawOverlay(stats)
	}

	imgui.Render()
	img.glsl.render(img.plt.windowSize(), img.plt.framebufferSize(), imgui.RenderedDrawData())
}

func (img *SdlImgui) drawOverlay(stats pipeline.FrameStats) {
	imgui.SetNextWindowPosV(imgui.Vec2{X: 10, Y: 10}, imgui.ConditionFirstUseEver, imgui.Vec2{X: 0, Y: 0})
	if !imgui.BeginV(overlayTitle, nil, imgui.WindowFlagsAlwaysAutoResize) {
		imgui.End()
		return
	}
	defer imgui.End()

	imgui.Text(fmt.Sprintf("%.1f fps", stats.FPS))
	imgui.SameLine()
	imgui.Text(fmt.Sprintf("%.2fms", float64(stats.FrameTime.Microseconds())/1000.0))
	imgui.Text(fmt.Sprintf("frame %d", stats.Frames))

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()

	img.drawTechniques(stats)

	imgui.Spacing()

	sharpness := float32(stats.Sharpness)
	if !stats.Technique.Sharpens() {
		imgui.PushStyleColor(imgui.StyleColorText, colorDisabled)
	}
	if imgui.SliderFloatV("Sharpness", &sharpness, pipeline.MinSharpness, pipeline.MaxSharpness, "%.2f", imgui.SliderFlagsNone) {
		img.state.SetSharpness(float64(sharpness))
		img.changed()
	}
	if !stats.Technique.Sharpens() {
		imgui.PopStyleColor()
	}

	native := stats.Native
	if imgui.Checkbox("Native (5)", &native) {
		img.state.SetNative(native)
		img.changed()
	}

	imgui.Spacing()
	imgui.Separator()
	imgui.Spacing()

	imgui.Text(fmt.Sprintf("internal %s", stats.InternalSize))
	imgui.Text(fmt.Sprintf("display  %s", stats.DisplaySize))
	dev := img.dev.Stats()
	imgui.Text(fmt.Sprintf("targets %d  draws %d", dev.LiveTargets, dev.Draws))

	if stats.LastError != nil {
		imgui.Spacing()
		imgui.PushStyleColor(imgui.StyleColorText, colorError)
		imgui.Text(errorString(stats.LastError))
		imgui.PopStyleColor()
	}

	img.drawDisabled()

	imgui.Spacing()
	if imgui.CollapsingHeader("Log") {
		var s strings.Builder
		logger.Tail(&s, overlayLogEntries)
		imgui.Text(strings.TrimSuffix(s.String(), "\n"))
	}

	imgui.Spacing()
	imgui.Text(version.String())
}

func (img *SdlImgui) drawTechniques(stats pipeline.FrameStats) {
	for _, t := range pipeline.Techniques {
		isDisabled := img.drv != nil && img.drv.Reconstructor().IsDisabled(t)
		if isDisabled {
			imgui.PushStyleColor(imgui.StyleColorText, colorDisabled)
		}

		label := fmt.Sprintf("%s (%s)", t, numberKeys[t])
		if imgui.RadioButton(label, stats.Technique == t) {
			img.state.SetTechnique(t)
			img.changed()
		}

		if isDisabled {
			imgui.PopStyleColor()
		}
	}
}

// drawDisabled lists the techniques that failed to compile along with the
// compiler log, which is shown in a tooltip.
func (img *SdlImgui) drawDisabled() {
	disabled := img.disabled()
	if len(disabled) == 0 {
		return
	}

	imgui.Spacing()
	imgui.PushStyleColor(imgui.StyleColorText, colorWarning)
	for _, d := range disabled {
		imgui.Text(fmt.Sprintf("%s disabled (%s)", d.Technique, d.Err.Program))
		if imgui.IsItemHovered() {
			imgui.BeginTooltip()
			imgui.Text(d.Err.Log)
			imgui.EndTooltip()
		}
	}
	imgui.PopStyleColor()
}
