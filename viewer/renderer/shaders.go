package renderer

// gridShaderSource is the WGSL module shared by the face and edge pipelines.
// One frame uniform carries the view-projection matrix and lighting; per-cube
// model matrices live in a read-only storage buffer indexed by instance.
const gridShaderSource = `
struct FrameUniforms {
    view_proj: mat4x4<f32>,
    light_dir: vec4<f32>,
    light_color: vec4<f32>,
    ambient: vec4<f32>,
};

@group(0) @binding(0) var<uniform> frame: FrameUniforms;
@group(0) @binding(1) var<storage, read> models: array<mat4x4<f32>>;

struct VertexInput {
    @location(0) position: vec3<f32>,
    @location(1) normal: vec3<f32>,
    @location(2) color: vec4<f32>,
};

struct VertexOutput {
    @builtin(position) clip_position: vec4<f32>,
    @location(0) world_normal: vec3<f32>,
    @location(1) color: vec4<f32>,
};

@vertex
fn vs_main(in: VertexInput, @builtin(instance_index) instance: u32) -> VertexOutput {
    let model = models[instance];
    var out: VertexOutput;
    out.clip_position = frame.view_proj * model * vec4<f32>(in.position, 1.0);
    out.world_normal = normalize((model * vec4<f32>(in.normal, 0.0)).xyz);
    out.color = in.color;
    return out;
}

@fragment
fn fs_lit(in: VertexOutput) -> @location(0) vec4<f32> {
    let n_dot_l = max(dot(normalize(in.world_normal), -normalize(frame.light_dir.xyz)), 0.0);
    let diffuse = frame.light_color.rgb * frame.light_color.a * n_dot_l;
    let ambient = frame.ambient.rgb * frame.ambient.a;
    return vec4<f32>(in.color.rgb * (diffuse + ambient), in.color.a);
}

@fragment
fn fs_flat(in: VertexOutput) -> @location(0) vec4<f32> {
    return in.color;
}
`
