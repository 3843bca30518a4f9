package remote

// Each probe is a single command chaining Linux, macOS, and Windows
// (PowerShell) forms with shell-level OR fallback, so one round trip
// covers every target OS. The command text is the wire contract with
// the paired parser and must not be reworded.
const (
	cpuCommand = `top -bn1 | grep 'Cpu(s)' | sed 's/.*, *\([0-9.]*\)%* id.*/\1/' | awk '{print 100 - $1}' || sar 1 1 | awk 'NR==4 {print 100-$NF}' || powershell -Command "(Get-Counter '\Processor(_Total)\% Processor Time').CounterSamples[0].CookedValue"`

	memoryCommand = `free -b | grep Mem | awk '{print $2,$3,$4,$7}' || vm_stat | awk '/Pages free/ {free=$3} /Pages active/ {active=$3} /Pages inactive/ {inactive=$3} /Pages wired/ {wired=$3} END {print (free+active+inactive+wired)*4096, (active+wired)*4096, free*4096, free*4096}' || powershell -Command "$mem = Get-WmiObject Win32_OperatingSystem; Write-Host $mem.TotalVisibleMemorySize*1024 $mem.FreePhysicalMemory*1024"`

	diskCommand = `df -B1 | awk 'NR>1 {print $1,$6,$2,$3,$4,$5}' || df -b | awk 'NR>1 {print $1,$9,$2,$3,$4,$5}' || powershell -Command "Get-PSDrive -PSProvider FileSystem | Where-Object {$_.Used -ne $null} | ForEach-Object {Write-Host $_.Name $_.Root ($_.Used+$_.Free) $_.Used $_.Free ([math]::Round($_.Used/($_.Used+$_.Free)*100,1))}"`

	networkCommand = `cat /proc/net/dev | awk 'NR>2 {recv+=$2; sent+=$10} END {print recv, sent}' || netstat -ib | awk 'NR>1 {recv+=$7; sent+=$10} END {print recv, sent}' || powershell -Command "$net = Get-NetAdapterStatistics; $recv = ($net | Measure-Object -Property ReceivedBytes -Sum).Sum; $sent = ($net | Measure-Object -Property SentBytes -Sum).Sum; Write-Host $recv $sent"`

	processCommand = `ps aux | awk 'NR>1 {print $2,$11,$3,$4,$8}' | head -100 || ps aux | awk 'NR>1 {print $2,$10,$3,$4,$8}' | head -100 || powershell -Command "Get-Process | Select-Object -First 100 | ForEach-Object {Write-Host $_.Id $_.ProcessName $_.CPU $_.WorkingSet64 'running'}"`

	osCommand       = `uname -s || powershell -Command "(Get-WmiObject Win32_OperatingSystem).Caption"`
	versionCommand  = `uname -r || powershell -Command "(Get-WmiObject Win32_OperatingSystem).Version"`
	archCommand     = `uname -m || powershell -Command "(Get-WmiObject Win32_Processor).Architecture"`
	hostnameCommand = `hostname`
	bootTimeCommand = `uptime -s 2>/dev/null || who -b | awk '{print $3,$4}' || powershell -Command "(Get-CimInstance Win32_OperatingSystem).LastBootUpTime"`
	cpuCountCommand = `nproc || sysctl -n hw.ncpu || powershell -Command "(Get-WmiObject Win32_Processor).NumberOfCores"`

	killCommand = `kill %d || taskkill /PID %d /F`
)
