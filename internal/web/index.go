package web

// indexHTML is the whole frontend: one page drawing the pet from the
// snapshot stream and sending button presses back over the socket.
const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>badgagotchi</title>
<style>
  body { background: #111; color: #eee; font-family: monospace; text-align: center; }
  #pet { width: 160px; height: 160px; margin: 30px auto 10px; border-radius: 30px; position: relative; }
  .eye { width: 18px; height: 28px; background: #111; border-radius: 8px; position: absolute; top: 50px; transition: height 0.05s; }
  #eyeL { left: 44px; }
  #eyeR { right: 44px; }
  .blink { height: 4px !important; margin-top: 12px; }
  #status { font-size: 1.3em; min-height: 1.5em; }
  #remark { color: #9cf; min-height: 1.2em; font-style: italic; }
  .bar { width: 260px; height: 14px; background: #333; margin: 6px auto; border-radius: 4px; overflow: hidden; }
  .bar div { height: 100%; }
  #hunger div { background: #6c6; }
  #happiness div { background: #fc6; }
  #poo div { background: #a74; }
  button { font-family: monospace; font-size: 1em; margin: 4px; padding: 8px 16px; background: #222; color: #eee; border: 1px solid #555; border-radius: 6px; cursor: pointer; }
  button:hover { background: #333; }
  #times { color: #888; margin-top: 12px; }
  #warning { color: #f80; min-height: 1.2em; }
  .gameover #pet { background: #400 !important; }
</style>
</head>
<body>
<div id="pet"><div class="eye" id="eyeL"></div><div class="eye" id="eyeR"></div></div>
<div id="status"></div>
<div id="remark"></div>
<div id="warning"></div>
<div class="bar" id="hunger"><div></div></div>
<div class="bar" id="happiness"><div></div></div>
<div class="bar" id="poo"><div></div></div>
<div>
  <button onclick="press('up')">Feed</button>
  <button onclick="press('right')">Play</button>
  <button onclick="press('confirm')">Clean / Start</button>
  <button onclick="press('cancel')">Exit</button>
</div>
<div id="times"></div>
<script>
const ws = new WebSocket((location.protocol === 'https:' ? 'wss://' : 'ws://') + location.host + '/ws');
function press(action) { ws.send(JSON.stringify({action: action})); }
ws.onmessage = function(ev) {
  // Frames may arrive coalesced, newline-separated. Render the last.
  const lines = ev.data.split('\n');
  const s = JSON.parse(lines[lines.length - 1]);
  document.body.className = s.phase === 'game_over' ? 'gameover' : '';
  const pet = document.getElementById('pet');
  pet.style.background = 'rgb(' + s.color.r + ',' + s.color.g + ',' + s.color.b + ')';
  document.getElementById('status').textContent = s.status;
  document.getElementById('remark').textContent = s.remark || '';
  document.getElementById('warning').textContent = s.warning ? '! danger ' + Math.round(s.danger * 100) + '% !' : '';
  document.getElementById('hunger').firstChild.style.width = s.hunger + '%';
  document.getElementById('happiness').firstChild.style.width = s.happiness + '%';
  document.getElementById('poo').firstChild.style.width = s.poo + '%';
  for (const id of ['eyeL', 'eyeR']) {
    const eye = document.getElementById(id);
    eye.className = s.eyes_blinking ? 'eye blink' : 'eye';
    eye.style.transform = 'translateX(' + (s.look_direction * 8) + 'px)';
  }
  let times = 'best: ' + s.best_time;
  if (s.time_alive) { times = 'alive: ' + s.time_alive + ' | ' + times; }
  if (s.new_record) { times += ' (new record!)'; }
  document.getElementById('times').textContent = times;
};
</script>
</body>
</html>
`
