/*
Package glkit holds the GL-independent parts of a thin OpenGL 4.1 and GLFW
toolkit: configuration, logging, input state, 2D math, transform and event
hierarchies, a small entity/component store, and sprite batching.

GPU resources live in package backend/opengl. Vertex layouts derived from
shader reflection live in package vertex, and shader sources in package
shadersrc.

# Quick Start

	cfg, err := glkit.LoadConfig("glkit.toml")
	if err != nil {
	    return err
	}
	glkit.SetVerbose(cfg.Verbose)

	win, err := opengl.NewWindow(cfg.Window, cfg.GL)
	if err != nil {
	    return err
	}
	defer win.Destroy()

	prog, err := opengl.NewProgram(vertexSrc, fragmentSrc)
	if err != nil {
	    return err
	}
	layout, err := prog.Layout(vertex.WithSpec(cfg.Layouts["sprite"]))
	if err != nil {
	    return err
	}

	ctx := opengl.NewRenderContext()
	batch := glkit.NewSpriteBatch(layout)
	renderer, err := opengl.NewBatchRenderer(ctx, prog, layout)
	if err != nil {
	    return err
	}

	for !win.ShouldClose() {
	    win.PollEvents()
	    batch.Clear()
	    batch.SetTexture(tex.ID())
	    batch.Add(glkit.Sprite2D{Size: glkit.Vec2{X: 64, Y: 64}, Model: world})
	    batch.Finalize()
	    w, h := win.FramebufferSize()
	    renderer.Render(batch, w, h)
	    win.SwapBuffers()
	}

# Handles

Transform nodes, event handlers and entities are addressed by generational
handles into slot arenas. A handle whose slot has been freed and reused
no longer resolves: lookups fail with ErrStaleHandle or report false.

# Threading

Nothing in glkit is safe for concurrent mutation. GL calls in
backend/opengl must come from the thread that owns the context; call
runtime.LockOSThread in main.
*/
package glkit
