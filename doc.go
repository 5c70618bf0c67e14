// Package canopy mirrors the images of a scrolling page as textured planes
// in a perspective scene, rendered on [Ebitengine].
//
// Each page element becomes a [TrackedItem]: a subdivided plane whose size
// is taken from the element once, and whose position follows the element as
// the page scrolls. The camera's field of view is chosen so one world unit
// equals one CSS pixel on the plane z = 0, so the planes line up with the
// layout exactly. A pointer ray drives a per-mesh hover coordinate, a
// one-second tween eases each mesh's hover state in and out, and a
// full-frame post pass distorts the image in proportion to scroll speed.
//
// # Quick start
//
//	page, err := canopy.LoadPage(manifestJSON)
//	// ...
//	scene := canopy.NewScene(page)
//	scene.SetLoadGate(canopy.NewImageLoader(os.DirFS("."), page.PageImages()))
//	canopy.Run(scene, canopy.RunConfig{Title: "Gallery", Width: 1280, Height: 800})
//
// For full control, implement [ebiten.Game] yourself, call [Scene.Update]
// and [Scene.Draw], and report size changes with [Scene.Resize].
//
// # Frame order
//
// The scene is idle until its [LoadGate] is ready; nothing is drawn before
// that. Once running, every tick drains queued input first, then pulls the
// eased scroll state, repositions every mesh, advances the hover tweens,
// writes the time uniforms and finally the scroll speed. All of it is
// carried in one [FrameContext].
//
// # Hover events
//
// Set an [EventSink] with [Scene.SetEventSink] to receive enter, leave and
// probe events. The canopy/ecs package publishes them into a [Donburi] world.
//
// [Ebitengine]: https://ebitengine.org
// [Donburi]: https://github.com/yohamta/donburi
package canopy
