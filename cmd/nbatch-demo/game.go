package main

import (
	"image"
	"image/color"
	"io/fs"
	"math"
	"math/rand"
	"os"

	"github.com/bloeys/gglm/gglm"
	"github.com/bloeys/nbatch/camera"
	"github.com/bloeys/nbatch/config"
	"github.com/bloeys/nbatch/engine"
	"github.com/bloeys/nbatch/input"
	"github.com/bloeys/nbatch/logging"
	"github.com/bloeys/nbatch/materials"
	"github.com/bloeys/nbatch/meshes"
	"github.com/bloeys/nbatch/meshes/assimpload"
	"github.com/bloeys/nbatch/renderer"
	"github.com/bloeys/nbatch/renderer/rend3dgl"
	"github.com/bloeys/nbatch/shaders"
	"github.com/bloeys/nbatch/timing"
	"github.com/veandco/go-sdl2/sdl"
)

const (
	camRotSpeed  = 0.005
	camZoomSpeed = 4

	pillarCount = 4
)

type Game struct {
	WinWidth  int32
	WinHeight int32
	Win       *engine.Window
	Rend      *rend3dgl.Rend3DGL
	Ctx       *renderer.Context

	Cfg        config.Config
	CfgPath    string
	CfgWatcher *config.Watcher

	cam      camera.Camera
	camDist  float32
	camPitch float32
	camYaw   float32

	terrainMesh  meshes.Mesh
	pillarMesh   meshes.Mesh
	instanceMesh meshes.Mesh
	particleMesh meshes.Mesh

	terrainMat  materials.Material
	instanceMat materials.Material
	particleMat materials.Material
	checkerTex  uint32

	// sceneMeshes are the terrain and pillars, drawn as one DrawMeshes batch
	sceneMeshes     []*meshes.Mesh
	sceneTransforms []gglm.Mat4

	instanceY          float32
	instanceTransforms []gglm.Mat4

	particles      []gglm.Vec4
	particlePhases []float32

	lastFpsLog uint64
}

func (g *Game) handleWindowEvents(e sdl.Event) {

	switch e := e.(type) {
	case *sdl.WindowEvent:
		if e.Event == sdl.WINDOWEVENT_SIZE_CHANGED {

			g.WinWidth = e.Data1
			g.WinHeight = e.Data2

			g.cam.AspectRatio = float32(g.WinWidth) / float32(g.WinHeight)
			g.cam.Update()
			g.Ctx.SetCamera(&g.cam)
		}
	}
}

func (g *Game) Init() {

	g.Rend = rend3dgl.NewRend3DGL()
	g.Ctx = renderer.NewContext(g.Rend)

	// Camera
	camPos := gglm.NewVec3(0, 20, 40)
	camForward := gglm.NewVec3(0, 0, -1)
	camWorldUp := gglm.NewVec3(0, 1, 0)
	g.cam = camera.NewPerspective(
		&camPos,
		&camForward,
		&camWorldUp,
		0.1, 500,
		45*gglm.Deg2Rad,
		float32(g.WinWidth)/float32(g.WinHeight),
	)
	g.updateCamera()

	// Materials
	locNames, err := g.Cfg.Shaders.LocNames()
	if err != nil {
		logging.ErrLog.Fatal("Invalid shader locations", "err", err)
	}

	g.terrainMat = g.loadMaterial("Terrain", g.Cfg.Shaders.Terrain, "shaders/terrain.glsl", locNames)
	g.instanceMat = g.loadMaterial("Instances", g.Cfg.Shaders.Instanced, "shaders/instanced.glsl", locNames)
	g.particleMat = g.loadMaterial("Particles", g.Cfg.Shaders.Particles, "shaders/particles.glsl", locNames)

	g.checkerTex, err = g.Rend.NewTexture2D(genCheckerImage(64, 8), true)
	if err != nil {
		logging.ErrLog.Fatal("Failed to create checker texture", "err", err)
	}

	g.terrainMat.SetTexture(materials.TextureSlot_Diffuse, g.checkerTex)
	g.terrainMat.SetColor(materials.TextureSlot_Diffuse, color.RGBA{R: 120, G: 170, B: 90, A: 255})

	g.instanceMat.SetTexture(materials.TextureSlot_Diffuse, g.checkerTex)
	g.instanceMat.SetColor(materials.TextureSlot_Diffuse, color.RGBA{R: 230, G: 140, B: 60, A: 255})

	g.particleMat.SetColor(materials.TextureSlot_Diffuse, color.RGBA{R: 180, G: 220, B: 255, A: 255})

	// Meshes
	g.genTerrain()

	g.pillarMesh = meshes.GenCube(1)
	g.particleMesh = meshes.GenCube(1)
	g.instanceMesh = g.loadInstanceMesh()

	for _, m := range []*meshes.Mesh{&g.pillarMesh, &g.particleMesh, &g.instanceMesh} {
		if err := m.Upload(g.Rend, false); err != nil {
			logging.ErrLog.Fatal("Failed to upload mesh", "name", m.Name, "err", err)
		}
	}

	g.sceneMeshes = []*meshes.Mesh{&g.terrainMesh}
	g.sceneTransforms = []gglm.Mat4{gglm.NewMat4Diag(1)}
	for i := 0; i < pillarCount; i++ {

		angle := float32(i) / pillarCount * 2 * math.Pi
		tr := gglm.NewTrMatId()
		tr.Translate(20*cos32(angle), 5, 20*sin32(angle)).Scale(1.5, 10, 1.5)

		g.sceneMeshes = append(g.sceneMeshes, &g.pillarMesh)
		g.sceneTransforms = append(g.sceneTransforms, tr.Mat4)
	}
	g.updateTerrainTransform()

	g.resizeInstances(g.Cfg.Instances.Count)
	g.resizeParticles(g.Cfg.Particles.Count)

	if _, err := os.Stat(g.CfgPath); err == nil {

		g.CfgWatcher, err = config.Watch(g.CfgPath)
		if err != nil {
			logging.ErrLog.Error("Config changes won't be applied while running", "err", err)
		}
	}
}

func (g *Game) loadMaterial(name, shaderPath, builtinPath string, locNames shaders.LocNames) materials.Material {

	var src []byte
	var err error
	if shaderPath != "" {
		src, err = os.ReadFile(shaderPath)
	} else {
		src, err = fs.ReadFile(builtinShaders, builtinPath)
	}

	if err != nil {
		logging.ErrLog.Fatal("Failed to read shader", "material", name, "err", err)
	}

	prog, err := rend3dgl.LoadAndCompileCombinedShaderSrc(src, locNames)
	if err != nil {
		logging.ErrLog.Fatal("Failed to compile shader", "material", name, "err", err)
	}

	return materials.NewMaterial(name, prog)
}

func (g *Game) loadInstanceMesh() meshes.Mesh {

	if g.Cfg.Instances.Model == "" {
		return meshes.GenCube(1)
	}

	m, err := assimpload.NewMesh("Instance", g.Cfg.Instances.Model, 0)
	if err != nil {
		logging.ErrLog.Error("Failed to load instance model, using a cube instead", "path", g.Cfg.Instances.Model, "err", err)
		return meshes.GenCube(1)
	}

	return m
}

// genTerrain (re)creates the terrain mesh from the terrain config
func (g *Game) genTerrain() {

	tc := &g.Cfg.Terrain

	edge := tc.Edge
	var heights []float32
	if tc.HeightField != "" {

		var err error
		edge, heights, err = meshes.LoadHeightField(tc.HeightField, tc.MaxHeight)
		if err != nil {
			logging.ErrLog.Error("Failed to load height field, generating one instead", "err", err)
			edge = tc.Edge
			heights = nil
		}
	}

	if heights == nil {
		heights = genHeights(edge, tc.MaxHeight)
	}

	terrain, err := meshes.GenHeightmapScaled(edge, heights, gglm.NewVec3(tc.Size[0], tc.Size[1], tc.Size[2]))
	if err != nil {
		logging.ErrLog.Fatal("Failed to generate terrain", "err", err)
	}

	g.terrainMesh.Unload(g.Rend)
	g.terrainMesh = terrain
	logging.InfoLog.Info("Generated terrain", "edge", edge, "triangles", g.terrainMesh.TriangleCount)
}

// updateTerrainTransform centers the terrain on the origin
func (g *Game) updateTerrainTransform() {
	tr := gglm.NewTrMatId()
	tr.Translate(-g.Cfg.Terrain.Size[0]/2, 0, -g.Cfg.Terrain.Size[2]/2)
	g.sceneTransforms[0] = tr.Mat4
}

func genHeights(edge int, maxHeight float32) []float32 {

	heights := make([]float32, edge*edge)
	for z := 0; z < edge; z++ {
		for x := 0; x < edge; x++ {
			h := sin32(float32(x)*0.15)*cos32(float32(z)*0.11) + 0.3*sin32(float32(x+z)*0.4)
			heights[x+z*edge] = (h/1.3*0.5 + 0.5) * maxHeight
		}
	}

	return heights
}

func genCheckerImage(size, cells int) *image.NRGBA {

	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	cellSize := size / cells
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {

			c := color.NRGBA{R: 255, G: 255, B: 255, A: 255}
			if (x/cellSize+y/cellSize)%2 == 1 {
				c = color.NRGBA{R: 200, G: 200, B: 200, A: 255}
			}

			img.SetNRGBA(x, y, c)
		}
	}

	return img
}

func (g *Game) resizeInstances(count int) {

	if cap(g.instanceTransforms) >= count {
		g.instanceTransforms = g.instanceTransforms[:count]
		return
	}

	g.instanceTransforms = append(g.instanceTransforms, make([]gglm.Mat4, count-len(g.instanceTransforms))...)
}

func (g *Game) resizeParticles(count int) {

	g.particles = make([]gglm.Vec4, count)
	g.particlePhases = make([]float32, count)
	for i := 0; i < count; i++ {
		g.particlePhases[i] = rand.Float32() * 2 * math.Pi
		g.particles[i] = gglm.NewVec4(0, 0, 0, 0.05+rand.Float32()*0.15)
	}
}

func (g *Game) Update() {

	if input.KeyClicked(sdl.K_ESCAPE) {
		engine.Quit()
	}

	g.pollConfig()
	g.updateCameraOrbit()

	t := float32(timing.ElapsedTime().Seconds())
	g.updateInstances(t)
	g.updateParticles(t)
}

// pollConfig applies config reloads without blocking the frame
func (g *Game) pollConfig() {

	if g.CfgWatcher == nil {
		return
	}

	select {
	case err := <-g.CfgWatcher.Errors():
		logging.ErrLog.Error("Failed to reload config", "err", err)

	case cfg := <-g.CfgWatcher.Configs():
		g.applyConfig(cfg)

	default:
	}
}

func (g *Game) applyConfig(cfg config.Config) {

	old := g.Cfg
	g.Cfg = cfg

	if err := logging.SetLevel(cfg.Log.Level); err != nil {
		logging.ErrLog.Error("Failed to set log level", "err", err)
	}

	if cfg.Window.VSync != old.Window.VSync {
		engine.SetVSync(cfg.Window.VSync)
	}

	if cfg.Terrain != old.Terrain {
		g.genTerrain()
		g.sceneMeshes[0] = &g.terrainMesh
		g.updateTerrainTransform()
	}

	if cfg.Instances.Count != old.Instances.Count {
		g.resizeInstances(cfg.Instances.Count)
	}

	if cfg.Particles.Count != old.Particles.Count {
		g.resizeParticles(cfg.Particles.Count)
	}

	logging.InfoLog.Info("Config reloaded", "path", g.CfgPath)
}

func (g *Game) updateCameraOrbit() {

	mouseX, mouseY := input.GetMouseMotion()
	if input.MouseDown(sdl.BUTTON_RIGHT) && (mouseX != 0 || mouseY != 0) {

		g.camYaw += float32(mouseX) * camRotSpeed
		g.camPitch = gglm.Clamp(g.camPitch+float32(mouseY)*camRotSpeed, 0.05, 1.5)
	}

	if wheel := input.GetMouseWheelMotion(); wheel != 0 {
		g.camDist = gglm.Clamp(g.camDist-float32(wheel)*camZoomSpeed, 5, 300)
	}

	g.updateCamera()
}

func (g *Game) updateCamera() {

	cosPitch := cos32(g.camPitch)
	dir := gglm.NewVec3(cosPitch*cos32(g.camYaw), sin32(g.camPitch), cosPitch*sin32(g.camYaw))

	g.cam.Pos = *dir.Clone().Scale(g.camDist)
	g.cam.Forward = *dir.Scale(-1)
	g.cam.Update()

	if g.Ctx != nil {
		g.Ctx.SetCamera(&g.cam)
	}
}

// updateInstances lays the instances out on a grid centered on the origin, each bobbing and spinning
func (g *Game) updateInstances(t float32) {

	if len(g.instanceTransforms) == 0 {
		return
	}

	spacing := g.Cfg.Instances.Spacing
	side := int(math.Ceil(math.Sqrt(float64(len(g.instanceTransforms)))))
	offset := float32(side-1) * spacing / 2

	for i := range g.instanceTransforms {

		x := float32(i%side)*spacing - offset
		z := float32(i/side)*spacing - offset
		y := 0.5 * sin32(t*2+float32(i)*0.3)

		tr := gglm.NewTrMatId()
		tr.Translate(x, y, z).Rotate(t+float32(i)*0.1, 0, 1, 0).Scale(0.5, 0.5, 0.5)
		g.instanceTransforms[i] = tr.Mat4
	}
}

func (g *Game) updateParticles(t float32) {

	radius := g.Cfg.Particles.Radius
	for i := range g.particles {

		phase := g.particlePhases[i]
		r := radius * (0.3 + 0.7*float32(i%97)/96)
		angle := phase + t*(0.2+0.3*float32(i%7)/6)

		p := &g.particles[i]
		p.Data[0] = r * cos32(angle)
		p.Data[1] = 15 + 6*sin32(phase*3+t)
		p.Data[2] = r * sin32(angle)
	}
}

func (g *Game) Render() {

	renderer.DrawMeshes(g.Ctx, &g.terrainMat, g.sceneMeshes, g.sceneTransforms)

	// Instances float above the terrain
	lift := gglm.NewTrMatId()
	lift.Translate(0, g.instanceY, 0)

	g.Ctx.PushTransform()
	g.Ctx.MulTransform(&lift.Mat4)
	renderer.DrawMeshInstanced(g.Ctx, &g.instanceMesh, &g.instanceMat, g.instanceTransforms)
	g.Ctx.PopTransform()

	renderer.DrawParticlesInstanced(g.Ctx, &g.particleMesh, &g.particleMat, g.particles)
}

func (g *Game) FrameEnd() {

	if lastUpdate := timing.LastFPSUpdateMs(); lastUpdate != g.lastFpsLog {
		g.lastFpsLog = lastUpdate
		logging.InfoLog.Debug("Frame stats", "fps", timing.GetAvgFPS(), "instances", len(g.instanceTransforms), "particles", len(g.particles))
	}
}

func (g *Game) DeInit() {

	if g.CfgWatcher != nil {
		g.CfgWatcher.Close()
	}

	g.terrainMesh.Unload(g.Rend)
	g.pillarMesh.Unload(g.Rend)
	g.instanceMesh.Unload(g.Rend)
	g.particleMesh.Unload(g.Rend)

	rend3dgl.DeleteShaderProgram(&g.terrainMat.ShaderProg)
	rend3dgl.DeleteShaderProgram(&g.instanceMat.ShaderProg)
	rend3dgl.DeleteShaderProgram(&g.particleMat.ShaderProg)

	g.Rend.DeleteTexture(g.checkerTex)
}

func sin32(x float32) float32 {
	return float32(math.Sin(float64(x)))
}

func cos32(x float32) float32 {
	return float32(math.Cos(float64(x)))
}
