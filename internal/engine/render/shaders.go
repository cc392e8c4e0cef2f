package render

const tileVertexShader = `#version 410 core

layout(location = 0) in vec2 aPos;
layout(location = 1) in vec2 aTexCoord;

uniform mat4 uProj;

out vec2 vTexCoord;

void main() {
	vTexCoord = aTexCoord;
	gl_Position = uProj * vec4(aPos, 0.0, 1.0);
}
`

const tileFragmentShader = `#version 410 core

in vec2 vTexCoord;

uniform sampler2D uTexture;
uniform vec4 uTint;
uniform bool uUseTexture;

out vec4 fragColor;

void main() {
	vec4 color = uUseTexture ? texture(uTexture, vTexCoord) : vec4(1.0);
	fragColor = color * uTint;
}
`
