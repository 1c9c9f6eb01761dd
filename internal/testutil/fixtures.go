// Package testutil provides shared fixtures for stackshift tests:
// representative raw CLI output from the vendors the parser supports.
package testutil

// HuaweiBrief is a trimmed "display interface brief" from a Huawei
// 24-port access switch, including uplink ports 25-28 and non-physical
// rows the parser must ignore.
const HuaweiBrief = `PHY: Physical
*down: administratively down
InUti/OutUti: input utility/output utility
Interface                   PHY   Protocol InUti OutUti   inErrors  outErrors
GigabitEthernet0/0/1        up    up        0.01%  0.01%         0          0
GigabitEthernet0/0/2        down  down         0%     0%         0          0
GigabitEthernet0/0/3        *down down         0%     0%         0          0
GigabitEthernet0/0/24       up    up        0.12%  0.30%         0          0
GigabitEthernet0/0/25       up    up        1.02%  2.21%         0          0
GigabitEthernet0/0/28       up    up        0.44%  0.87%         0          0
NULL0                       up    up(s)        0%     0%         0          0
Vlanif100                   up    up           --     --         0          0
`

// HPBrief is a brief listing in the HP three-segment dialect.
const HPBrief = `Interface                   PHY   Protocol
Eth1/0/1                    up    up
Eth1/0/2                    down  down
Eth1/0/8                    up    up
GigabitEthernet1/0/1        up    up
`

// AccessBlock is a Huawei access-port configuration block.
const AccessBlock = `#
interface GigabitEthernet0/0/2
 description Floor2-Printer
 port link-type access
 port default vlan 20
 speed 100
 duplex full
#
return
`

// TrunkBlock is a Huawei trunk-port configuration block.
const TrunkBlock = `#
interface GigabitEthernet0/0/5
 description Uplink
 port link-type trunk
 port trunk allow-pass vlan 10 20
#
return
`

// ImplicitAccessBlock omits the "port link-type" line; the parser must
// infer access mode from the VLAN line.
const ImplicitAccessBlock = `#
interface Ethernet0/0/7
 port default vlan 30
#
return
`

// HPTrunkAllBlock uses the HP "permit vlan all" spelling.
const HPTrunkAllBlock = `#
interface Eth1/0/4
 port link-type trunk
 port trunk permit vlan all
#
return
`

// LAGMemberBlock is a port bound into an aggregation group.
const LAGMemberBlock = `#
interface GigabitEthernet0/0/23
 description To-Core
 eth-trunk 5
#
return
`

// ShutdownBlock is an administratively disabled port.
const ShutdownBlock = `#
interface GigabitEthernet0/0/9
 shutdown
#
return
`
