package scenario

import "strings"

// Entry pairs a pre-vetted source with the topic keywords that select it.
type Entry struct {
	Keywords []string
	Unit     *SourceUnit
}

var library = []Entry{
	{
		Keywords: []string{"pendulum", "swing"},
		Unit: New("Simple Pendulum", pendulumSource,
			"A damped pendulum integrated per frame. Adjust the length slider to change the period."),
	},
	{
		Keywords: []string{"projectile", "cannon", "throw", "trajectory"},
		Unit: New("Projectile Motion", projectileSource,
			"A ball launched at an angle under constant gravity, relaunching when it lands."),
	},
	{
		Keywords: []string{"orbit", "planet", "moon", "satellite"},
		Unit: New("Two-Body Orbit", orbitSource,
			"A satellite in orbit around a central mass, integrated with RK4."),
	},
	{
		Keywords: []string{"spring", "oscillator", "harmonic", "mass"},
		Unit: New("Spring Oscillator", springSource,
			"A mass on a damped spring. Stiffness and damping are adjustable."),
	},
	{
		Keywords: []string{"bounce", "bouncing", "balls", "collision"},
		Unit: New("Bouncing Balls", bounceSource,
			"Three balls falling under gravity and bouncing off the ground plane."),
	},
}

// Lookup matches a topic against the library's keywords, substring in
// either direction, case-insensitive.
func Lookup(topic string) (*SourceUnit, bool) {
	t := strings.ToLower(strings.TrimSpace(topic))
	if t == "" {
		return nil, false
	}
	for _, e := range library {
		for _, k := range e.Keywords {
			if strings.Contains(t, k) || strings.Contains(k, t) {
				return e.Unit, true
			}
		}
	}
	return nil, false
}

// Entries lists every built-in unit, for the library browser.
func Entries() []*SourceUnit {
	out := make([]*SourceUnit, len(library))
	for i, e := range library {
		out[i] = e.Unit
	}
	return out
}

// Default is the scenario mounted at session start.
func Default() *SourceUnit { return library[0].Unit }

const pendulumSource = `
const pivot = vec3(0, 3, 0);
const length = slider('length', 1.8, 0.5, 3);
const bob = sphere(0.25);
const rod = line(pivot, vec3(0, 1.2, 0));
grid(8, 8);

const theta = ref(1.2);
const omega = ref(0);

onFrame(function (frame) {
  const l = length.value;
  const alpha = -(PHYSICS.gravity / l) * Math.sin(theta.current) - 0.05 * omega.current;
  omega.current += alpha * frame.delta;
  theta.current += omega.current * frame.delta;
  const tip = vec3(
    pivot.x + l * Math.sin(theta.current),
    pivot.y - l * Math.cos(theta.current),
    0
  );
  bob.setPosition(tip.x, tip.y, tip.z);
  rod.setEnds(pivot, tip);
  plot('theta', theta.current);
});
`

const projectileSource = `
const speed = slider('speed', 8, 2, 15);
const angle = slider('angle', 0.9, 0.1, 1.5);
const ball = sphere(0.2);
grid(12, 12);

const pos = ref(null);
const vel = ref(null);

function relaunch() {
  pos.current = { x: -5, y: 0.2 };
  vel.current = {
    x: speed.value * Math.cos(angle.value),
    y: speed.value * Math.sin(angle.value)
  };
}
relaunch();

onFrame(function (frame) {
  const p = pos.current;
  const v = vel.current;
  v.y -= PHYSICS.gravity * frame.delta;
  p.x += v.x * frame.delta;
  p.y += v.y * frame.delta;
  if (p.y < 0.2) {
    relaunch();
  } else {
    ball.setPosition(p.x, p.y, 0);
  }
  plot('height', p.y);
});
`

const orbitSource = `
const mu = slider('mu', 40, 10, 100);
const star = sphere(0.5);
star.setPosition(0, 1.5, 0);
const moon = sphere(0.15);
const trail = group();
grid(10, 10);

const state = ref([3, 0, 0, 3.5]);

onFrame(function (frame) {
  const next = PHYSICS.rk4(function (s) {
    const r = Math.sqrt(s[0] * s[0] + s[1] * s[1]);
    const a = -mu.value / (r * r * r);
    return [s[2], s[3], a * s[0], a * s[1]];
  }, state.current, frame.clock, frame.delta);
  state.current = next;
  moon.setPosition(next[0], 1.5, next[1]);
  plot('radius', Math.sqrt(next[0] * next[0] + next[1] * next[1]));
});
`

const springSource = `
const stiffness = slider('stiffness', 20, 1, 80);
const damping = slider('damping', 0.4, 0, 4);
const anchor = vec3(0, 3.5, 0);
const mass = box();
mass.setScale(0.5, 0.5, 0.5);
const link = line(anchor, vec3(0, 2, 0));
grid(8, 8);

const x = ref(1.2);
const v = ref(0);

onFrame(function (frame) {
  const a = PHYSICS.spring(x.current, v.current, stiffness.value, damping.value);
  v.current += a * frame.delta;
  x.current += v.current * frame.delta;
  const y = 2 - x.current * 0.5;
  mass.setPosition(0, y, 0);
  link.setEnds(anchor, vec3(0, y + 0.25, 0));
  plot('displacement', x.current);
});
`

const bounceSource = `
grid(10, 10);
const balls = [];
for (let i = 0; i < 3; i++) {
  balls.push({
    node: sphere(0.25),
    x: -2 + i * 2,
    y: 3 + i,
    vy: 0
  });
}

onFrame(function (frame) {
  for (let i = 0; i < balls.length; i++) {
    const b = balls[i];
    b.vy -= PHYSICS.gravity * frame.delta;
    b.y += b.vy * frame.delta;
    if (b.y < 0.25) {
      b.y = 0.25;
      b.vy = -b.vy * 0.85;
    }
    b.node.setPosition(b.x, b.y, 0);
  }
  plot('ball0', balls[0].y);
});
`
